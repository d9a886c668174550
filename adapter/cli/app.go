package cli

// App holds CLI-wide dependencies shared across commands. The roster
// engine has no persisted state (§5 Non-goals), so unlike the teacher's
// App this carries no command/query handler registry; it exists as an
// extension point for future cross-cutting CLI state (e.g. a shared
// output writer or a non-default rule library).
type App struct{}

// app is the global CLI application instance.
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
