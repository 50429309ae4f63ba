package document

// MergeRuns exposes mergeRuns to the external test package.
var MergeRuns = mergeRuns
