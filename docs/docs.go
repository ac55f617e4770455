// Package docs registers the OpenAPI description served at /swagger.
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
        "/api/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.RegisterInput"}}],
                "responses": {"201": {"description": "Account created"}, "400": {"description": "Invalid input"}, "409": {"description": "Email already registered"}}
            }
        },
        "/api/auth/signin": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}],
                "responses": {"200": {"description": "Signed in"}, "400": {"description": "Missing fields"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/api/auth/signout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Signed out"}}
            }
        },
        "/api/auth/session": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current session",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Session"}, "401": {"description": "No session"}}
            }
        },
        "/api/matches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["matches"],
                "summary": "List matches by tab",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Tabs"}, "401": {"description": "Not signed in"}, "500": {"description": "Failed to load matches"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["matches"],
                "summary": "Schedule a match",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/forms.MatchDraft"}}],
                "responses": {"201": {"description": "Match added"}, "400": {"description": "Malformed request"}, "403": {"description": "Captains only"}, "422": {"description": "Field errors"}, "503": {"description": "Uploads not configured"}}
            }
        },
        "/api/matches/{matchID}/score": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["matches"],
                "summary": "Update a match score",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/forms.ScoreDraft"}}
                ],
                "responses": {"200": {"description": "Score updated"}, "403": {"description": "Captains only"}, "404": {"description": "Match not found"}, "409": {"description": "Match already completed"}, "422": {"description": "Field errors"}}
            }
        },
        "/api/players": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["players"],
                "summary": "List the squad",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Players"}, "401": {"description": "Not signed in"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["players"],
                "summary": "Add a player",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/forms.PlayerDraft"}}],
                "responses": {"201": {"description": "Player added"}, "403": {"description": "Captains only"}, "422": {"description": "Field errors"}, "503": {"description": "Uploads not configured"}}
            }
        },
        "/api/players/{playerID}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["players"],
                "summary": "Remove a player",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Player ID", "name": "playerID", "in": "path", "required": true},
                    {"type": "boolean", "description": "Confirms the removal", "name": "confirm", "in": "query"}
                ],
                "responses": {"200": {"description": "Player removed"}, "400": {"description": "Confirmation required"}, "403": {"description": "Captains only"}, "404": {"description": "Player not found"}}
            }
        }
    },
    "definitions": {
        "services.RegisterInput": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["captain", "player"]},
                "redirect_to": {"type": "string"}
            }
        },
        "services.LoginInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "forms.MatchDraft": {
            "type": "object",
            "properties": {
                "match_date": {"type": "string", "example": "2025-01-02"},
                "match_time": {"type": "string", "example": "18:00"},
                "opponent_team": {"type": "string"},
                "venue": {"type": "string"},
                "match_type": {"type": "string", "enum": ["Regular", "T20", "ODI", "Test", "Tournament"]},
                "is_sunday_match": {"type": "boolean"}
            }
        },
        "forms.PlayerDraft": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["Batsman", "Bowler", "All-rounder", "Wicket-keeper"]},
                "jersey_number": {"type": "string"},
                "batting_style": {"type": "string"},
                "bowling_style": {"type": "string"}
            }
        },
        "forms.ScoreDraft": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["upcoming", "live", "completed"]},
                "gncc_score": {"type": "string"},
                "gncc_wickets": {"type": "string"},
                "gncc_overs": {"type": "string"},
                "opponent_score": {"type": "string"},
                "opponent_wickets": {"type": "string"},
                "opponent_overs": {"type": "string"},
                "result": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GNCC Cricket Dashboard API",
	Description:      "Matches, players and sessions for the GNCC team dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
