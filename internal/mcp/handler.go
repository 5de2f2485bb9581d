package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pakbaz/todolist/internal/services"
	"github.com/pakbaz/todolist/internal/types"
	"github.com/pakbaz/todolist/internal/util"
	"github.com/pakbaz/todolist/models"
)

const protocolVersion = "2024-11-05"

// Handler serves the JSON-RPC 2.0 tool-calling endpoint. It is stateless;
// every request is self-contained.
type Handler struct {
	ServerName    string
	ServerVersion string
	Service       services.TodoService
	Logger        models.Logger
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := util.ParseJSON(r, &req); err != nil {
		h.respond(w, errorResponse(nil, CodeParseError, "Parse error"))
		return
	}

	if req.Method == "" || len(req.ID) == 0 {
		h.respond(w, errorResponse(req.ID, CodeInvalidRequest, "Invalid Request: method and id are required"))
		return
	}

	switch req.Method {
	case "initialize":
		h.respond(w, resultResponse(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    h.ServerName,
				"version": h.ServerVersion,
			},
		}))

	case "tools/list":
		h.respond(w, resultResponse(req.ID, map[string]any{
			"tools": Tools(),
		}))

	case "tools/call":
		h.respond(w, h.callTool(r, req))

	default:
		h.respond(w, errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method)))
	}
}

func (h *Handler) Handler() http.Handler {
	return http.HandlerFunc(h.Handle)
}

func (h *Handler) callTool(r *http.Request, req Request) Response {
	var params CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, CodeInvalidParams, "Invalid params")
		}
	}
	if params.Name == "" {
		return errorResponse(req.ID, CodeInvalidParams, "Invalid params: tool name is required")
	}

	args := struct {
		Title  *string `json:"title"`
		IsDone *bool   `json:"isDone"`
	}{}
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			return errorResponse(req.ID, CodeInvalidParams, "Invalid params: malformed arguments")
		}
	}

	ctx := r.Context()

	var payload any
	switch params.Name {
	case ToolAddTodo:
		if args.Title == nil {
			return errorResponse(req.ID, CodeInvalidParams, "Invalid params: title is required")
		}
		isDone := args.IsDone != nil && *args.IsDone

		todo, created, err := h.Service.Add(ctx, *args.Title, isDone)
		if resp, failed := h.checkToolError(req, params.Name, err); failed {
			return resp
		}
		message := fmt.Sprintf("todo %q added", todo.Title)
		if !created {
			message = fmt.Sprintf("todo %q already exists", todo.Title)
		}
		payload = types.MessageResponse{Success: true, Message: message}

	case ToolRemoveTodo:
		if args.Title == nil {
			return errorResponse(req.ID, CodeInvalidParams, "Invalid params: title is required")
		}

		removed, err := h.Service.RemoveByTitle(ctx, *args.Title)
		if resp, failed := h.checkToolError(req, params.Name, err); failed {
			return resp
		}
		if removed == 0 {
			payload = types.MessageResponse{Success: false, Message: fmt.Sprintf("no todo found with title %q", *args.Title)}
		} else {
			payload = types.MessageResponse{Success: true, Message: fmt.Sprintf("removed %d todo(s) with title %q", removed, *args.Title)}
		}

	case ToolMarkTodoDone:
		if args.Title == nil || args.IsDone == nil {
			return errorResponse(req.ID, CodeInvalidParams, "Invalid params: title and isDone are required")
		}

		updated, err := h.Service.SetDone(ctx, *args.Title, *args.IsDone)
		if resp, failed := h.checkToolError(req, params.Name, err); failed {
			return resp
		}
		if updated == 0 {
			payload = types.MessageResponse{Success: false, Message: fmt.Sprintf("no todo found with title %q", *args.Title)}
		} else {
			payload = types.MessageResponse{Success: true, Message: fmt.Sprintf("todo %q updated", *args.Title)}
		}

	case ToolGetTodos:
		todos, err := h.Service.List(ctx)
		if resp, failed := h.checkToolError(req, params.Name, err); failed {
			return resp
		}
		payload = types.ListResponse{Success: true, Todos: types.ToViews(todos), Count: len(todos)}

	default:
		return errorResponse(req.ID, CodeInvalidParams, fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	text, err := json.Marshal(payload)
	if err != nil {
		h.Logger.Error("failed to marshal tool result", "tool", params.Name, "error", err)
		return errorResponse(req.ID, CodeInternalError, "Internal error")
	}

	return resultResponse(req.ID, CallToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(text)}},
	})
}

// checkToolError maps service failures onto JSON-RPC error codes. Validation
// failures become invalid-params errors; store failures surface as a generic
// internal error with the detail kept in the server log.
func (h *Handler) checkToolError(req Request, tool string, err error) (Response, bool) {
	switch {
	case err == nil:
		return Response{}, false
	case errors.Is(err, services.ErrEmptyTitle), errors.Is(err, services.ErrTitleTooLong):
		return errorResponse(req.ID, CodeInvalidParams, fmt.Sprintf("Invalid params: %s", err)), true
	default:
		h.Logger.Error("tool call failed", "tool", tool, "error", err)
		return errorResponse(req.ID, CodeInternalError, "Internal error"), true
	}
}

func (h *Handler) respond(w http.ResponseWriter, resp Response) {
	util.JSONResponse(w, http.StatusOK, resp)
}
