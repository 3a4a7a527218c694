package ui

const AsciiArt = `
██████╗ ██████╗ ███████╗    ██████╗ ███████╗██████╗
██╔══██╗██╔══██╗██╔════╝    ██╔══██╗██╔════╝██╔══██╗
██████╔╝██████╔╝███████╗    ██████╔╝█████╗  ██████╔╝
██╔═══╝ ██╔══██╗╚════██║    ██╔══██╗██╔══╝  ██╔═══╝
██║     ██║  ██║███████║    ██║  ██║███████╗██║
╚═╝     ╚═╝  ╚═╝╚══════╝    ╚═╝  ╚═╝╚══════╝╚═╝
`

// Raw escape codes for the CLI's own status lines. Report text goes
// through Styler so it can be rendered without color.
const (
	ColorReset  = "\033[0m"
	ColorGray   = "\033[90m" // Light gray
	ColorRed    = "\033[91m" // Bright Red
	ColorGreen  = "\033[92m" // Bright Green
	ColorYellow = "\033[93m" // Bright Yellow
)
