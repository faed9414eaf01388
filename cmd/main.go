package main

import (
	"salon-booking/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to start salon booking service: %v", err)
	}

	app.Run()
}
