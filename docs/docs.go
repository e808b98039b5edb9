// Package docs holds the OpenAPI document served at /swagger/. It follows
// the layout swag produces and is maintained alongside the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Account details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "username or email already taken", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Per-topic accuracy, points, marked questions and the exam-year filters available.",
                "produces": ["application/json"],
                "tags": ["Results"],
                "summary": "Progress dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DashboardResponse"}}
                }
            }
        },
        "/feedback": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Ask the configured language model for advice based on per-topic accuracy.",
                "produces": ["application/json"],
                "tags": ["Results"],
                "summary": "AI study feedback",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.FeedbackResponse"}},
                    "503": {"description": "feedback unavailable", "schema": {"$ref": "#/definitions/api.FeedbackResponse"}}
                }
            }
        },
        "/questions/{questionID}/explanation": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Return the worked explanation for a question, or a placeholder when none is stored.",
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "Explain a question",
                "parameters": [
                    {"type": "string", "description": "Question ID", "name": "questionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ExplanationResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/quiz": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Start a five-question quiz. Without filters the batch targets the weakest topic.\nA quiz already in progress is returned unchanged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Start a quiz",
                "parameters": [
                    {"description": "Optional topic or exam-year filter", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/api.StartQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "existing quiz resumed", "schema": {"$ref": "#/definitions/api.ProgressResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.ProgressResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "not enough questions", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/quiz/answer": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Answer the current question",
                "parameters": [
                    {"description": "Selected option (A-D)", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SubmitAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AnswerResponse"}},
                    "400": {"description": "invalid option", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "no quiz in progress", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "api.AnswerResponse": {
            "type": "object",
            "properties": {
                "correct": {"type": "boolean"},
                "correct_option": {"type": "string", "example": "B"},
                "explanation": {"type": "string"},
                "next": {"$ref": "#/definitions/api.ProgressResponse"},
                "points_awarded": {"type": "integer"},
                "recorded": {"type": "boolean"},
                "selected": {"type": "string", "example": "B"}
            }
        },
        "api.DashboardResponse": {
            "type": "object",
            "properties": {
                "exam_years": {"type": "array", "items": {"type": "string"}},
                "marked": {"type": "array", "items": {"$ref": "#/definitions/api.QuestionResponse"}},
                "points": {"type": "integer", "example": 120},
                "topics": {"type": "array", "items": {"$ref": "#/definitions/quiz.TopicSummary"}},
                "username": {"type": "string", "example": "ada"}
            }
        },
        "api.ExplanationResponse": {
            "type": "object",
            "properties": {
                "explanation": {"type": "string", "example": "Subtract 3 from both sides, then divide by 2."}
            }
        },
        "api.FeedbackResponse": {
            "type": "object",
            "properties": {
                "feedback": {"type": "string"}
            }
        },
        "api.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ada@example.com"},
                "password": {"type": "string", "example": "secret"}
            }
        },
        "api.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "token_type": {"type": "string", "example": "Bearer"},
                "user": {"$ref": "#/definitions/api.UserResponse"}
            }
        },
        "api.OptionResponse": {
            "type": "object",
            "properties": {
                "letter": {"type": "string", "example": "B"},
                "text": {"type": "string", "example": "x = 2"}
            }
        },
        "api.ProgressResponse": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "example": "adaptive"},
                "position": {"type": "integer", "example": 1},
                "question": {"$ref": "#/definitions/api.QuestionResponse"},
                "remaining_seconds": {"type": "integer", "example": 600},
                "previous": {"$ref": "#/definitions/quiz.Result"},
                "result": {"$ref": "#/definitions/quiz.Result"},
                "resumed": {"type": "boolean"},
                "score": {"type": "integer", "example": 0},
                "total": {"type": "integer", "example": 5}
            }
        },
        "api.QuestionResponse": {
            "type": "object",
            "properties": {
                "difficulty": {"type": "integer", "example": 1},
                "exam_year": {"type": "string", "example": "JAMB 2019"},
                "id": {"type": "string", "example": "q1w2e3r4t5y6u7i8"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/api.OptionResponse"}},
                "prompt": {"type": "string", "example": "Solve for x: 2x + 3 = 7"},
                "topic": {"type": "string", "example": "Algebra"}
            }
        },
        "api.RegisterRequest": {
            "type": "object",
            "properties": {
                "confirm_password": {"type": "string", "example": "secret"},
                "email": {"type": "string", "example": "ada@example.com"},
                "password": {"type": "string", "example": "secret"},
                "username": {"type": "string", "example": "ada"}
            }
        },
        "api.StartQuizRequest": {
            "type": "object",
            "properties": {
                "exam_year": {"type": "string", "example": "JAMB"},
                "topic": {"type": "string", "example": "Algebra"}
            }
        },
        "api.SubmitAnswerRequest": {
            "type": "object",
            "properties": {
                "option": {"type": "string", "example": "B"}
            }
        },
        "api.UserResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ada@example.com"},
                "id": {"type": "string", "example": "a1b2c3d4e5f6g7h8"},
                "points": {"type": "integer", "example": 120},
                "username": {"type": "string", "example": "ada"}
            }
        },
        "quiz.Result": {
            "type": "object",
            "properties": {
                "mode": {"type": "string"},
                "score": {"type": "integer"},
                "timed_out": {"type": "boolean"},
                "total": {"type": "integer"}
            }
        },
        "quiz.TopicSummary": {
            "type": "object",
            "properties": {
                "correct": {"type": "integer"},
                "percentage": {"type": "number"},
                "topic": {"type": "string"},
                "total": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NaijaPrep API",
	Description:      "Adaptive multiple-choice maths practice for JAMB and WAEC candidates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
