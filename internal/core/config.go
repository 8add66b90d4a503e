package core

// RuntimeConfig is what the platform tells a game when a round starts.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Frames per second sent by the platform
	Seed     int64 // 0 lets the platform pick one from the clock
}

// DefaultConfig is an 80x24 terminal at 30 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
}

// GameState is the summary the platform needs after every frame.
type GameState struct {
	Score    int
	Level    int // 1-based
	GameOver bool
	Paused   bool
}

// StepResult wraps the state after one Step.
type StepResult struct {
	State GameState
}

// HighScoreRecorder persists the best score per mode.
// RecordHighScore returns the best known score after recording.
type HighScoreRecorder interface {
	RecordHighScore(mode string, score int) (int, error)
	HighScore(mode string) int
}
