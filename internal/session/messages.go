package session

import "fmt"

const usageFormat = `Press and hold the '%s' key to begin recording
Release the '%s' key to end recording
Press the '%s' key to quit session

`

func printUsage(recordKey, quitKey string) {
	fmt.Printf(usageFormat, recordKey, recordKey, quitKey)
}
