package source

// ParseObjectURL is exported for testing
var ParseObjectURL = parseObjectURL
