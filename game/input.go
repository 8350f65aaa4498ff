package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input. Keys are ignored while the output
// file box has focus.
func (a *App) handleInput() {
	if a.outFile.Editing() {
		return
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.pending.action = actionRestart
	}
}
