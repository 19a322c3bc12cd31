// Package docs Swagger 文档模板，按 swag 的注册格式手工维护，修改接口注解时同步更新
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
        "/api/v1/messages": {
            "post": {
                "description": "type 为 AI_REWRITE、CALM_REWRITE 或 AI_TOOLTIP，响应分别为 {data}|{error}、{replacements}、{text}",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["消息"],
                "summary": "分发扩展消息",
                "parameters": [
                    {
                        "description": "消息信封",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.Message"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/v1/rewrite": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["消息"],
                "summary": "正文改写",
                "parameters": [
                    {
                        "description": "改写请求",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.RewriteRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.RewriteResponse"}}
                }
            }
        },
        "/api/v1/calm": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["消息"],
                "summary": "平静模式改写",
                "parameters": [
                    {
                        "description": "平静模式请求",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.CalmRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CalmResponse"}}
                }
            }
        },
        "/api/v1/tooltip": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["消息"],
                "summary": "元素描述",
                "parameters": [
                    {
                        "description": "元素描述请求",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.TooltipRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TooltipResponse"}}
                }
            }
        },
        "/api/v1/prefs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["偏好设置"],
                "summary": "读取偏好设置",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SuccessResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "description": "密钥必须以 gsk_ 开头，且需同时接受使用条款与隐私政策",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["偏好设置"],
                "summary": "保存偏好设置",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "description": "偏好设置",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.SavePrefsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/relay/chat/completions": {
            "post": {
                "description": "OPTIONS 返回 204；非 POST 返回 405；未配置密钥返回 500",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["转发"],
                "summary": "转发补全请求",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "405": {"description": "Method Not Allowed", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "detail": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "http.SuccessResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "model.CalmReplacement": {
            "type": "object",
            "properties": {
                "calm": {"type": "string"},
                "original": {"type": "string"}
            }
        },
        "model.CalmRequest": {
            "type": "object",
            "properties": {
                "prefs": {"$ref": "#/definitions/model.Preferences"},
                "texts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.CalmResponse": {
            "type": "object",
            "properties": {
                "replacements": {"type": "array", "items": {"$ref": "#/definitions/model.CalmReplacement"}}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "model.Message": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "elementHtml": {"type": "string"},
                "mode": {"type": "string", "enum": ["plain", "grade5", "bullets", "steps", "literal", "actions"]},
                "prefs": {"$ref": "#/definitions/model.Preferences"},
                "text": {"type": "string"},
                "texts": {"type": "array", "items": {"type": "string"}},
                "type": {"type": "string", "enum": ["AI_REWRITE", "CALM_REWRITE", "AI_TOOLTIP"]}
            }
        },
        "model.Preferences": {
            "type": "object",
            "properties": {
                "openaiApiKey": {"type": "string"},
                "privacyAccepted": {"type": "boolean"},
                "termsAccepted": {"type": "boolean"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.RewriteRequest": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "enum": ["plain", "grade5", "bullets", "steps", "literal", "actions"]},
                "prefs": {"$ref": "#/definitions/model.Preferences"},
                "text": {"type": "string"}
            }
        },
        "model.RewriteResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/model.RewriteResult"},
                "error": {"type": "string"}
            }
        },
        "model.RewriteResult": {
            "type": "object",
            "properties": {
                "actions_detected": {"type": "array", "items": {"type": "string"}},
                "bullet_version": {"type": "array", "items": {"type": "string"}},
                "deadlines_detected": {"type": "array", "items": {"type": "string"}},
                "literal_version": {"type": "string"},
                "simplified_text": {"type": "string"},
                "step_version": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.SavePrefsRequest": {
            "type": "object",
            "required": ["openaiApiKey"],
            "properties": {
                "openaiApiKey": {"type": "string"},
                "privacyAccepted": {"type": "boolean"},
                "termsAccepted": {"type": "boolean"}
            }
        },
        "model.TooltipRequest": {
            "type": "object",
            "properties": {
                "elementHtml": {"type": "string"},
                "prefs": {"$ref": "#/definitions/model.Preferences"}
            }
        },
        "model.TooltipResponse": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pincer API",
	Description:      "Accessibility text-rewrite pipeline: chunked completion, merge and caching.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
