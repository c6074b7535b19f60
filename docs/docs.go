// Package docs регистрирует описание API для /swagger.
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
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Регистрация менеджера", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.RegisterInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Вход, выдаёт JWT", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/me": {
            "get": {"tags": ["auth"], "summary": "Текущий пользователь", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/players": {
            "get": {"tags": ["players"], "summary": "Каталог игроков", "responses": {"200": {"description": "OK"}}}
        },
        "/players/{playerID}": {
            "get": {"tags": ["players"], "summary": "Игрок по ID",
                "parameters": [{"in": "path", "name": "playerID", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/gameweek": {
            "get": {"tags": ["gameweek"], "summary": "Текущий тур", "responses": {"200": {"description": "OK"}}}
        },
        "/match-events": {
            "post": {"tags": ["match-events"], "summary": "Применить матчевое событие к очкам игрока",
                "description": "goal +5, assist +3, yellow_card -1, red_card -3, appearance +1",
                "parameters": [
                    {"in": "header", "name": "X-Ingest-Key", "type": "string", "required": false},
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handlers.MatchEventRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "405": {"description": "Method Not Allowed"}, "500": {"description": "Internal Server Error"}}}
        },
        "/squad": {
            "get": {"tags": ["squad"], "summary": "Состав текущего пользователя", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/squad/reconcile": {
            "post": {"tags": ["squad"], "summary": "Перевести состав на текущий тур", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/squad/players": {
            "post": {"tags": ["squad"], "summary": "Купить игрока", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handlers.playerRefInput"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/squad/players/{playerID}": {
            "delete": {"tags": ["squad"], "summary": "Продать игрока", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "playerID", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/squad/captain": {
            "put": {"tags": ["squad"], "summary": "Назначить капитана", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handlers.playerRefInput"}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/squad/vice-captain": {
            "put": {"tags": ["squad"], "summary": "Назначить вице-капитана", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handlers.playerRefInput"}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/squad/score": {
            "get": {"tags": ["squad"], "summary": "Очки состава", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/leagues": {
            "get": {"tags": ["leagues"], "summary": "Мои лиги", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["leagues"], "summary": "Создать лигу", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/leagues/join": {
            "post": {"tags": ["leagues"], "summary": "Вступить в лигу по коду", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/leagues/{leagueID}": {
            "get": {"tags": ["leagues"], "summary": "Лига", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "leagueID", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/leagues/{leagueID}/leaderboard": {
            "get": {"tags": ["leagues"], "summary": "Таблица лиги", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "leagueID", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/admin/players": {
            "post": {"tags": ["admin"], "summary": "Создать или заменить игрока каталога", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/services.UpsertPlayerInput"}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/admin/players/{playerID}/image": {
            "post": {"tags": ["admin"], "summary": "Загрузить фото игрока", "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "path", "name": "playerID", "type": "string", "required": true},
                    {"in": "formData", "name": "image", "type": "file", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/admin/gameweek": {
            "put": {"tags": ["admin"], "summary": "Установить текущий тур", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "services.RegisterInput": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "display_name": {"type": "string"}}},
        "services.LoginInput": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "services.UpsertPlayerInput": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "team": {"type": "string"}, "position": {"type": "string"},
            "jersey_number": {"type": "integer"}, "image_hint": {"type": "string"}, "price": {"type": "number"}}},
        "handlers.MatchEventRequest": {"type": "object", "properties": {"playerId": {"type": "string"}, "action": {"type": "string",
            "enum": ["goal", "assist", "yellow_card", "red_card", "appearance", "clean_sheet_half", "clean_sheet_full"]}}},
        "handlers.playerRefInput": {"type": "object", "properties": {"player_id": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Botola Fantasy API",
	Description:      "Фэнтези-футбол Botola Pro: составы, трансферы, лиги и приём матчевых событий.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
