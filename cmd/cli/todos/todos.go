package todos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mwalcott/todo-api/cmd/cli/config"
	"github.com/mwalcott/todo-api/cmd/cli/output"
	"github.com/mwalcott/todo-api/internal/models"
)

// ==========================
// Init Todos
// ==========================
func InitTodos(rootCmd *cobra.Command) {
	todosCmd := &cobra.Command{
		Use:   "todos",
		Short: "Manage todos",
	}

	todosCmd.AddCommand(
		listTodosCmd(),
		addTodoCmd(),
		completeTodoCmd(),
		deleteTodoCmd(),
	)

	rootCmd.AddCommand(todosCmd)
}

// ==========================
// LIST
// ==========================
func listTodosCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your todos",
		Run: func(cmd *cobra.Command, args []string) {
			var todos []models.Todo
			if err := apiDo("GET", "/api/todos", nil, &todos); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				b, _ := json.MarshalIndent(todos, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(todos))
			for _, t := range todos {
				rows = append(rows, []interface{}{t.ID, t.Title, t.Body, t.Status, t.CreatedAt.Format("2006-01-02 15:04")})
			}
			output.RenderTable([]string{"ID", "Title", "Body", "Status", "Created"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")
	return cmd
}

// ==========================
// ADD
// ==========================
func addTodoCmd() *cobra.Command {
	var title string
	var body string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a todo",
		Run: func(cmd *cobra.Command, args []string) {
			var todo models.Todo
			payload := map[string]string{"title": title, "body": body}
			if err := apiDo("POST", "/api/todos", payload, &todo); err != nil {
				fmt.Println(err)
				return
			}
			fmt.Printf("Added todo %d: %s\n", todo.ID, todo.Title)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "todo title")
	cmd.Flags().StringVar(&body, "body", "", "todo body")
	return cmd
}

// ==========================
// COMPLETE
// ==========================
func completeTodoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a todo completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				fmt.Println("id must be a positive integer")
				return
			}

			var todo models.Todo
			payload := map[string]interface{}{"id": id, "status": models.StatusCompleted}
			if err := apiDo("PATCH", "/api/todos", payload, &todo); err != nil {
				fmt.Println(err)
				return
			}
			fmt.Printf("Todo %d is now %s\n", todo.ID, todo.Status)
		},
	}
}

// ==========================
// DELETE
// ==========================
func deleteTodoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				fmt.Println("id must be a positive integer")
				return
			}

			var todo models.Todo
			if err := apiDo("DELETE", "/api/todos", map[string]int{"id": id}, &todo); err != nil {
				fmt.Println(err)
				return
			}
			fmt.Printf("Deleted todo %d: %s\n", todo.ID, todo.Title)
		},
	}
}

// apiDo sends an authenticated JSON request and decodes the response.
func apiDo(method, path string, payload interface{}, out interface{}) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("API error: %s", apiErr.Error)
		}
		return fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
