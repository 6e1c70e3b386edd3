package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Screening Star Admin API",
        "description": "Backend API for the background verification admin portal",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Admin authentication and password recovery"},
        {"name": "Admins", "description": "Admin account and permission management"},
        {"name": "Customers", "description": "Client company and branch management"},
        {"name": "Services", "description": "Verification service catalog"},
        {"name": "Tracker", "description": "Client master tracker submissions"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate an admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/verify-two-factor": {
            "post": {
                "tags": ["Auth"],
                "summary": "Verify a login OTP",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyOTPRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/logout": {
            "get": {
                "tags": ["Auth"],
                "summary": "Invalidate the current session token",
                "parameters": [
                    {"name": "admin_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "_token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/forgot-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Request a password reset link",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ForgotPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reset-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Reset password with a signed token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/create": {
            "post": {
                "tags": ["Admins"],
                "summary": "Create an admin account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminCreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username or email in use", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/list": {
            "get": {
                "tags": ["Admins"],
                "summary": "List admin accounts",
                "parameters": [
                    {"name": "admin_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "_token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/customer/create": {
            "post": {
                "tags": ["Customers"],
                "summary": "Onboard a client company",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CustomerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Client code in use", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/service/is-code-unique": {
            "get": {
                "tags": ["Services"],
                "summary": "Check service code availability",
                "parameters": [
                    {"name": "code", "in": "query", "required": true, "type": "string"},
                    {"name": "exclude_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/client-tracker/submit": {
            "post": {
                "tags": ["Tracker"],
                "summary": "Submit a tracker form",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TrackerSubmitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "VerifyOTPRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "otp": {"type": "string"}
            },
            "required": ["username", "otp"]
        },
        "ForgotPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            },
            "required": ["email"]
        },
        "ResetPasswordRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "new_password": {"type": "string"}
            },
            "required": ["token", "new_password"]
        },
        "AdminCreateRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "mobile": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"},
                "permissions": {"type": "object"}
            },
            "required": ["name", "username", "email", "password", "role"]
        },
        "CustomerRequest": {
            "type": "object",
            "properties": {
                "company_name": {"type": "string"},
                "client_code": {"type": "string"},
                "address": {"type": "string"},
                "head_branch_email": {"type": "string"}
            },
            "required": ["company_name", "client_code"]
        },
        "TrackerSubmitRequest": {
            "type": "object",
            "properties": {
                "customer_id": {"type": "integer"},
                "form": {"type": "object"}
            },
            "required": ["customer_id", "form"]
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "token": {"type": "string"},
                "code": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
