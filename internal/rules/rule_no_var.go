package rules

func init() {
	Register(Rule{
		ID:          "no-var",
		Summary:     "Require let or const instead of var.",
		Recommended: true,
		Check:       nodeCheck("no-var", "Unexpected var, use let or const instead.", func(s *syntax) []int { return s.vars }),
	})
}
