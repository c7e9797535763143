package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/mechess/internal/mechess/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := mechess(); err != nil {
		logrus.Fatal(err)
	}
}

func mechess() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
