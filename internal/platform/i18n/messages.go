package i18n

import "golang.org/x/text/language"

// Message keys for the error envelope.
const (
	MsgInvalidArgument     = "error.invalid_argument"
	MsgUnauthenticated     = "error.unauthenticated"
	MsgPermissionDenied    = "error.permission_denied"
	MsgAccountInactive     = "error.account_inactive"
	MsgNotFound            = "error.not_found"
	MsgAlreadyExists       = "error.already_exists"
	MsgServiceUnavailable  = "error.service_unavailable"
	MsgInternal            = "error.internal"
	MsgMethodNotAllowed    = "error.method_not_allowed"
	MsgInvalidRequestBody  = "error.invalid_request_body"
	MsgRequestBodyTooLarge = "error.request_body_too_large"
)

var errorMessages = map[string]map[language.Tag]string{
	MsgInvalidArgument: {
		language.BrazilianPortuguese: "Dados inválidos.",
		language.English:             "Invalid input.",
	},
	MsgUnauthenticated: {
		language.BrazilianPortuguese: "Você precisa entrar para continuar.",
		language.English:             "You need to sign in to continue.",
	},
	MsgPermissionDenied: {
		language.BrazilianPortuguese: "Você não tem permissão para esta ação.",
		language.English:             "You do not have permission for this action.",
	},
	MsgAccountInactive: {
		language.BrazilianPortuguese: "Sua conta está desativada.",
		language.English:             "Your account is deactivated.",
	},
	MsgNotFound: {
		language.BrazilianPortuguese: "Recurso não encontrado.",
		language.English:             "Resource not found.",
	},
	MsgAlreadyExists: {
		language.BrazilianPortuguese: "Registro já existe.",
		language.English:             "Resource already exists.",
	},
	MsgServiceUnavailable: {
		language.BrazilianPortuguese: "Serviço temporariamente indisponível.",
		language.English:             "Service temporarily unavailable.",
	},
	MsgInternal: {
		language.BrazilianPortuguese: "Erro interno do servidor.",
		language.English:             "Internal server error.",
	},
	MsgMethodNotAllowed: {
		language.BrazilianPortuguese: "Método não permitido.",
		language.English:             "Method not allowed.",
	},
	MsgInvalidRequestBody: {
		language.BrazilianPortuguese: "Corpo da requisição inválido.",
		language.English:             "Invalid request body.",
	},
	MsgRequestBodyTooLarge: {
		language.BrazilianPortuguese: "Corpo da requisição muito grande.",
		language.English:             "Request body too large.",
	},
}
