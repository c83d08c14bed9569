package testcases

// All contains all pages, grouped by category.
// The category name is used as a prefix in generated file names.
var All = map[string][]Page{
	"grid":  gridPages,
	"round": roundPages,
}
