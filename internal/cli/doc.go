// Package cli provides the terminal user interface of nutrilog.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Screens
//
// [AppModel] hosts six screens and switches between them with tab,
// shift+tab or the keys 1 to 6:
//   - Dashboard: calorie balance, macro split, goal bars and today's meals
//   - Add food: filter saved foods, pick a quantity, preview and log a meal
//   - Barcode: look up a food by barcode and save it
//   - Foods: the saved food database
//   - History: per-day totals of the last days
//   - Settings: basal metabolism and macro goals
//
// Add food and Barcode are reached from the dashboard and keep its tab
// highlighted.
//
// Every screen reads from the [core.Service] state and talks to the API
// through commands, so the UI never blocks on the network.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
