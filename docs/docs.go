// Package docs holds the Swagger document served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": [
        "http"
    ],
    "paths": {
        "/users/register": {
            "post": {
                "tags": [
                    "Users"
                ],
                "summary": "Register a new user",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "User and token"
                    },
                    "400": {
                        "description": "Missing values, mismatched or short password, email taken"
                    }
                }
            }
        },
        "/users/login": {
            "post": {
                "tags": [
                    "Users"
                ],
                "summary": "Log in",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User and token"
                    },
                    "401": {
                        "description": "Incorrect email/password"
                    }
                }
            }
        },
        "/users/logout": {
            "get": {
                "tags": [
                    "Users"
                ],
                "summary": "Log out",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Acknowledgment"
                    }
                }
            }
        },
        "/users": {
            "get": {
                "tags": [
                    "Users"
                ],
                "summary": "List users",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "All users without passwords"
                    }
                }
            }
        },
        "/users/{uid}": {
            "get": {
                "tags": [
                    "Users"
                ],
                "summary": "Get a user",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "uid",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User without password"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        },
        "/users/updateUser/{uid}": {
            "patch": {
                "tags": [
                    "Users"
                ],
                "summary": "Update a profile",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "uid",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateUserRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Update acknowledgment"
                    },
                    "400": {
                        "description": "Invalid change"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        },
        "/users/{uid}/addPersonToGroup": {
            "patch": {
                "tags": [
                    "Users"
                ],
                "summary": "Add a collaborator to the group",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "uid",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AddPersonRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Added"
                    },
                    "400": {
                        "description": "Already in group or self"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        },
        "/users/{uid}/getEmailsForGroup": {
            "get": {
                "tags": [
                    "Users"
                ],
                "summary": "List group emails",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "uid",
                        "required": true,
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Emails"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        },
        "/tasks/{userId}/createTask": {
            "post": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Create a task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "userId",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateTaskRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created task"
                    },
                    "400": {
                        "description": "Missing values or empty checklist"
                    },
                    "401": {
                        "description": "Creator not found"
                    },
                    "404": {
                        "description": "Assigned user not found"
                    }
                }
            }
        },
        "/tasks/{taskId}": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Get a task",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "taskId",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task"
                    },
                    "404": {
                        "description": "Task not found"
                    }
                }
            }
        },
        "/tasks/allTasks/{userId}": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "List the caller's tasks",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "userId",
                        "required": true,
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Tasks"
                    },
                    "403": {
                        "description": "Not the caller's list"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        },
        "/tasks/updateTask/{taskId}": {
            "patch": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Update a task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "taskId",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateTaskRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated task"
                    },
                    "400": {
                        "description": "Invalid change"
                    },
                    "401": {
                        "description": "Unauthenticated"
                    },
                    "403": {
                        "description": "Not the creator"
                    },
                    "404": {
                        "description": "Task or assignee not found"
                    }
                }
            }
        },
        "/tasks/changeTaskType/{taskId}": {
            "patch": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Move a task to another column",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "taskId",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.ChangeTaskTypeRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Acknowledgment"
                    },
                    "400": {
                        "description": "Invalid task type"
                    },
                    "403": {
                        "description": "Neither creator nor assignee"
                    },
                    "404": {
                        "description": "Task not found"
                    }
                }
            }
        },
        "/tasks/setSubTaskCheck/{taskId}": {
            "patch": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Check or uncheck a checklist entry",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "taskId",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.SetSubTaskCheckRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated entry"
                    },
                    "403": {
                        "description": "Not the creator"
                    },
                    "404": {
                        "description": "Task or entry not found"
                    }
                }
            }
        },
        "/tasks/deleteTask/{taskId}": {
            "delete": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Delete a task",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "taskId",
                        "required": true,
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Empty object"
                    },
                    "403": {
                        "description": "Not the creator"
                    },
                    "404": {
                        "description": "Task not found"
                    }
                }
            }
        },
        "/tasks/{userId}/getStatusPriorityCount": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Count the caller's tasks by column and priority",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "userId",
                        "required": true,
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Counts"
                    },
                    "403": {
                        "description": "Not the caller's list"
                    }
                }
            }
        },
        "/tasks/getAssigneeEmailsByTask/{taskId}": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "List assignee emails",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "taskId",
                        "required": true,
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Emails"
                    },
                    "404": {
                        "description": "Task not found"
                    }
                }
            }
        }
    },
    "definitions": {
        "ports.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "confirmPassword": {
                    "type": "string"
                }
            }
        },
        "ports.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "ports.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "updatedEmail": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "oldPassword": {
                    "type": "string"
                },
                "newPassword": {
                    "type": "string"
                }
            }
        },
        "ports.AddPersonRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                }
            }
        },
        "ports.SubTaskInput": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "done": {
                    "type": "boolean"
                }
            }
        },
        "ports.CreateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "High",
                        "Moderate",
                        "Low"
                    ]
                },
                "assignNow": {
                    "type": "string"
                },
                "checklist": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ports.SubTaskInput"
                    }
                },
                "dueDate": {
                    "type": "string"
                }
            }
        },
        "ports.UpdateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "High",
                        "Moderate",
                        "Low"
                    ]
                },
                "assignNow": {
                    "type": "string"
                },
                "checklist": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ports.SubTaskInput"
                    }
                },
                "taskType": {
                    "type": "string",
                    "enum": [
                        "Backlog",
                        "To do",
                        "In Progress",
                        "Done"
                    ]
                },
                "dueDate": {
                    "type": "string"
                }
            }
        },
        "ports.ChangeTaskTypeRequest": {
            "type": "object",
            "properties": {
                "newTaskType": {
                    "type": "string",
                    "enum": [
                        "Backlog",
                        "To do",
                        "In Progress",
                        "Done"
                    ]
                }
            }
        },
        "ports.SetSubTaskCheckRequest": {
            "type": "object",
            "properties": {
                "subTaskId": {
                    "type": "string"
                },
                "subTaskDone": {
                    "type": "boolean"
                }
            }
        },
        "ports.ErrorResponse": {
            "type": "object",
            "properties": {
                "msg": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "ProManage API",
	Description:      "Task management backend with personal boards, checklists and collaborator groups",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
