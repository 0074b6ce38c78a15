package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/promanage/core/cmd/api/commands"
)

// @title ProManage API
// @version 1.0
// @description Task management backend with personal boards, checklists and collaborator groups

// @host localhost:3000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "promanage",
		Short: "ProManage API Server",
		Long:  `ProManage is a task management backend: users keep boards of tasks with checklists, assign collaborators and track progress across columns.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
