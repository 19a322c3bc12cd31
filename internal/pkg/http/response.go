package http

// ErrorResponse 错误响应（管理类 API 共用）
// Code 为 5 位错误码：400xx 请求错误，404xx 资源不存在，500xx 服务端错误
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// SuccessResponse 成功响应（管理类 API 共用）
type SuccessResponse struct {
	Code    int    `json:"code"` // 0 表示成功
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data any) *SuccessResponse {
	return &SuccessResponse{
		Code:    0,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应，detail 可选
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}
