package pkg

type Action string

const (
	ActionNewGame  Action = "New Game"
	ActionExit     Action = "Exit"
	ActionWin      Action = "You win!"
	ActionLose     Action = "You lose"
	ActionThinking Action = "Thinking..."
)

func (a Action) String() string {
	return string(a)
}
