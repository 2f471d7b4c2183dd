// Package docs 注册 swagger 文档，供 gin-swagger 的 /swagger 路由使用
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
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "用户注册",
                "responses": {"201": {"description": "注册成功"}, "400": {"description": "参数错误"}, "409": {"description": "用户名或邮箱已存在"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "用户登录",
                "responses": {"200": {"description": "登录成功"}, "401": {"description": "凭证无效"}, "429": {"description": "尝试过多"}}
            }
        },
        "/api/auth/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "获取个人信息",
                "responses": {"200": {"description": "获取成功"}, "404": {"description": "用户不存在"}}
            }
        },
        "/api/auth/change-password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "修改密码",
                "responses": {"200": {"description": "修改成功"}, "401": {"description": "当前密码错误"}}
            }
        },
        "/api/auth/profile/image": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "更新头像",
                "responses": {"200": {"description": "更新成功"}, "400": {"description": "文件无效"}}
            }
        },
        "/api/auth/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "用户列表（管理员）",
                "responses": {"200": {"description": "获取成功"}, "403": {"description": "权限不足"}}
            }
        },
        "/api/categories": {
            "get": {"produces": ["application/json"], "tags": ["类别"], "summary": "类别列表", "responses": {"200": {"description": "获取成功"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["类别"], "summary": "创建类别", "responses": {"201": {"description": "创建成功"}, "400": {"description": "参数错误"}}}
        },
        "/api/category/{id}": {
            "get": {"produces": ["application/json"], "tags": ["类别"], "summary": "类别详情", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "获取成功"}, "404": {"description": "类别不存在"}}},
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["类别"], "summary": "更新类别", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "更新成功"}, "404": {"description": "类别不存在"}}},
            "delete": {"produces": ["application/json"], "tags": ["类别"], "summary": "删除类别", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "删除成功"}, "409": {"description": "类别仍被引用"}}}
        },
        "/api/expenses": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["消费记录"], "summary": "消费记录列表", "responses": {"200": {"description": "获取成功"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["消费记录"], "summary": "批量创建消费记录", "responses": {"201": {"description": "创建成功"}, "400": {"description": "参数错误"}}}
        },
        "/api/expense": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["消费记录"], "summary": "创建消费记录", "responses": {"201": {"description": "创建成功"}, "400": {"description": "参数错误"}}}
        },
        "/api/expense/{id}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["消费记录"], "summary": "消费记录详情", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "获取成功"}, "404": {"description": "记录不存在"}}},
            "put": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["消费记录"], "summary": "更新消费记录", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "更新成功"}, "404": {"description": "记录不存在"}}},
            "delete": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["消费记录"], "summary": "删除消费记录", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "删除成功"}, "404": {"description": "记录不存在"}}}
        },
        "/api/expenses/{month}/{year}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["消费记录"], "summary": "按月查询", "parameters": [{"type": "integer", "name": "month", "in": "path", "required": true}, {"type": "integer", "name": "year", "in": "path", "required": true}], "responses": {"200": {"description": "获取成功"}}}
        },
        "/api/expenses/summary/{month}/{year}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["统计"], "summary": "月度汇总", "parameters": [{"type": "integer", "name": "month", "in": "path", "required": true}, {"type": "integer", "name": "year", "in": "path", "required": true}], "responses": {"200": {"description": "获取成功"}}}
        },
        "/api/expenses/categories/{month}/{year}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["统计"], "summary": "按类别汇总", "parameters": [{"type": "integer", "name": "month", "in": "path", "required": true}, {"type": "integer", "name": "year", "in": "path", "required": true}], "responses": {"200": {"description": "获取成功"}}}
        },
        "/api/expenses/fixed/all": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["消费记录"], "summary": "固定支出", "responses": {"200": {"description": "获取成功"}}}
        },
        "/api/expenses/installment/all": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["消费记录"], "summary": "分期支出", "responses": {"200": {"description": "获取成功"}}}
        },
        "/api/expenses/report/{month}/{year}": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["统计"], "summary": "月度报表", "parameters": [{"type": "integer", "name": "month", "in": "path", "required": true}, {"type": "integer", "name": "year", "in": "path", "required": true}], "responses": {"200": {"description": "获取成功"}}}
        },
        "/api/expenses/report/{month}/{year}/export": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "tags": ["统计"], "summary": "导出月度报表", "parameters": [{"type": "integer", "name": "month", "in": "path", "required": true}, {"type": "integer", "name": "year", "in": "path", "required": true}], "responses": {"200": {"description": "xlsx 文件"}}}
        },
        "/api/expenses/report/{month}/{year}/email": {
            "post": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["统计"], "summary": "邮件发送月度报表", "parameters": [{"type": "integer", "name": "month", "in": "path", "required": true}, {"type": "integer", "name": "year", "in": "path", "required": true}], "responses": {"200": {"description": "发送成功"}, "400": {"description": "邮件未启用"}}}
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

// SwaggerInfo 文档元信息，可在启动时覆盖 Host 等字段
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ledger 记账 API",
	Description:      "个人/家庭支出记账 API：用户认证、消费类别、消费记录与月度报表",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
