package main

import (
	"context"
	"log"
	"os"

	"github.com/Rakhulsr/go-ecommerce-admin/app/cmd"
	"github.com/Rakhulsr/go-ecommerce-admin/app/configs"
)

func main() {
	env := configs.LoadEnv()

	if err := cmd.RunCli(context.Background(), env, os.Args); err != nil {
		log.Fatal(err)
	}
}
