package tools

import (
	"fmt"

	"github.com/golang/glog"
)

var isEnabled = true

func DisableLogger() {
	isEnabled = false
}

// Prints a progress message to the user and records it in the log
func LogOutput(val ...interface{}) {
	glog.InfoDepth(1, val...)
	if isEnabled {
		fmt.Println(val...)
	}
}
