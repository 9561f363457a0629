package main

import (
	"fmt"
	"os"

	"github.com/mwalcott/todo-api/cmd/cli/auth"
	"github.com/mwalcott/todo-api/cmd/cli/root"
	"github.com/mwalcott/todo-api/cmd/cli/todos"
	"github.com/mwalcott/todo-api/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	todos.InitTodos(rootCmd)
	users.InitUsers(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
