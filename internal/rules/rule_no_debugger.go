package rules

func init() {
	Register(Rule{
		ID:          "no-debugger",
		Summary:     "Disallow debugger statements.",
		Recommended: true,
		Check:       nodeCheck("no-debugger", "Unexpected 'debugger' statement.", func(s *syntax) []int { return s.debuggers }),
	})
}
