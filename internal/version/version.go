package version

const Value = "1.0.0"

// ToolVersion identifies the build in debug logs.
func ToolVersion() string {
	return "prsreport/" + Value
}
