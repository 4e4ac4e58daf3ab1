// Package model define os modelos de domínio.
package model

import "fmt"

// APIError é o formato unificado de erro da API.
// Inclui a categoria da causa e a ação sugerida exibidas na UI.
type APIError struct {
	Code     string // código do erro
	Message  string // mensagem do erro
	Category string // categoria: auth, validation, template, conversion, system
	Action   string // ação sugerida ao usuário
}

// Error implementa a interface error.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Códigos de erro definidos
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidValue      = "INVALID_VALUE"
	ErrCodeEmailConflict     = "EMAIL_CONFLICT"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeWrongPassword     = "WRONG_PASSWORD"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeTemplateNotFound  = "TEMPLATE_NOT_FOUND"
	ErrCodeRenderError       = "RENDER_ERROR"
	ErrCodeConversionService = "CONVERSION_SERVICE_ERROR"
	ErrCodePdfUnavailable    = "PDF_CONVERSION_UNAVAILABLE"
)

// NewInvalidInputError gera um erro de entrada inválida.
func NewInvalidInputError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidInput,
		Message:  detail,
		Category: "validation",
		Action:   "Verifique os campos enviados e tente novamente.",
	}
}

// NewInvalidValueError gera um erro de valor monetário inválido.
func NewInvalidValueError(input string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidValue,
		Message:  fmt.Sprintf("Valor inválido: %q", input),
		Category: "validation",
		Action:   "Informe um valor no formato R$ 1.234,56.",
	}
}

// NewEmailConflictError gera um erro de e-mail duplicado.
func NewEmailConflictError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailConflict,
		Message:  "E-mail já cadastrado.",
		Category: "validation",
		Action:   "Faça login ou use a recuperação de senha.",
	}
}

// NewUserNotFoundError gera um erro de usuário não encontrado.
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "Usuário não encontrado.",
		Category: "auth",
		Action:   "Confira o e-mail informado ou faça o cadastro.",
	}
}

// NewWrongPasswordError gera um erro de senha incorreta.
func NewWrongPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWrongPassword,
		Message:  "Senha incorreta.",
		Category: "auth",
		Action:   "Verifique a senha e tente novamente.",
	}
}

// NewUnauthorizedError gera um erro de autenticação ausente ou inválida.
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Autenticação necessária.",
		Category: "auth",
		Action:   "Faça login e envie o token no cabeçalho Authorization.",
	}
}

// NewForbiddenError gera um erro de permissão insuficiente.
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "Acesso restrito ao administrador.",
		Category: "auth",
		Action:   "Entre com a conta administrativa configurada.",
	}
}

// NewTemplateNotFoundError gera um erro de template DOCX ausente.
func NewTemplateNotFoundError(model string) *APIError {
	return &APIError{
		Code:     ErrCodeTemplateNotFound,
		Message:  fmt.Sprintf("Template DOCX não encontrado: %s", model),
		Category: "template",
		Action:   "Verifique se o arquivo do modelo existe no diretório de templates.",
	}
}

// NewRenderError gera um erro de substituição de placeholders.
func NewRenderError() *APIError {
	return &APIError{
		Code:     ErrCodeRenderError,
		Message:  "Placeholders ausentes: o template precisa conter os campos ITEM e VALOR.",
		Category: "template",
		Action:   "Use {{ITEM}} e {{VALOR}} (ou outro estilo suportado) no .docx.",
	}
}

// NewConversionServiceError gera um erro do serviço externo de conversão.
// body deve vir truncado pelo chamador.
func NewConversionServiceError(status int, body string) *APIError {
	return &APIError{
		Code:     ErrCodeConversionService,
		Message:  fmt.Sprintf("Gotenberg falhou (%d): %s", status, body),
		Category: "conversion",
		Action:   "Verifique o serviço de conversão e tente novamente.",
	}
}

// NewPdfUnavailableError gera um erro de conversão PDF indisponível.
// A mensagem varia conforme o serviço externo ter sido tentado ou não.
func NewPdfUnavailableError(externalTried bool) *APIError {
	msg := "Falha ao converter para PDF. Configure GOTENBERG_URL ou instale o LibreOffice."
	if externalTried {
		msg = "Falha via Gotenberg e sem LibreOffice. Verifique GOTENBERG_URL e o /health do serviço Gotenberg."
	}
	return &APIError{
		Code:     ErrCodePdfUnavailable,
		Message:  msg,
		Category: "conversion",
		Action:   "Configure o serviço externo ou instale o conversor local.",
	}
}
