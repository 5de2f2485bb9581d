package mcp

// Tool names form a closed set; dispatch is a switch, never reflection.
const (
	ToolAddTodo      = "add_todo"
	ToolRemoveTodo   = "remove_todo"
	ToolMarkTodoDone = "mark_todo_done"
	ToolGetTodos     = "get_todos"
)

// Tool describes one invocable operation in the tools/list result.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Tools returns the static tool registry. Field names and required-ness are
// part of the wire contract with tool-calling clients.
func Tools() []Tool {
	return []Tool{
		{
			Name:        ToolAddTodo,
			Description: "Add a new todo item. Adding an existing title is a no-op.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"title":  {Type: "string", Description: "Title of the todo item"},
					"isDone": {Type: "boolean", Description: "Whether the todo starts completed"},
				},
				Required: []string{"title"},
			},
		},
		{
			Name:        ToolRemoveTodo,
			Description: "Remove all todo items with the given title.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"title": {Type: "string", Description: "Title of the todo item to remove"},
				},
				Required: []string{"title"},
			},
		},
		{
			Name:        ToolMarkTodoDone,
			Description: "Mark all todo items with the given title as done or not done.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"title":  {Type: "string", Description: "Title of the todo item to update"},
					"isDone": {Type: "boolean", Description: "New completion state"},
				},
				Required: []string{"title", "isDone"},
			},
		},
		{
			Name:        ToolGetTodos,
			Description: "List all todo items ordered by creation time.",
			InputSchema: InputSchema{
				Type:       "object",
				Properties: map[string]Property{},
			},
		},
	}
}
