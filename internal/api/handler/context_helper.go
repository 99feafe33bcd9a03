package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/api/middleware"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// MustGetUserID extracts user_id injected by the JWT middleware. On a
// missing or malformed value it writes a 401; the caller should return
// when ok is false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		response.Unauthorized(c, 10002, "no autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "no autenticado")
		return "", false
	}
	return s, true
}

// serviceErrorStatus maps one business error to its HTTP status and
// envelope code.
type serviceErrorStatus struct {
	status int
	code   int
}

var serviceErrors = map[error]serviceErrorStatus{
	service.ErrCredencialesInvalidas: {http.StatusUnauthorized, 11001},
	service.ErrCorreoRegistrado:      {http.StatusConflict, 11002},
	service.ErrUsuarioNoEncontrado:   {http.StatusNotFound, 11003},
	service.ErrRefreshInvalido:       {http.StatusUnauthorized, 11004},

	service.ErrCursoNoActivo:           {http.StatusConflict, 12001},
	service.ErrPeriodosNoConfigurados:  {http.StatusConflict, 12002},
	service.ErrCursoNoEncontrado:       {http.StatusNotFound, 12003},
	service.ErrPeriodoFechasInvalidas:  {http.StatusUnprocessableEntity, 12004},
	service.ErrPeriodosSolapados:       {http.StatusUnprocessableEntity, 12005},
	service.ErrPeriodosIncompletos:     {http.StatusUnprocessableEntity, 12006},
	service.ErrFechaInvalida:           {http.StatusBadRequest, 12007},

	service.ErrEstudianteNoEncontrado: {http.StatusNotFound, 13001},
	service.ErrFechaAnteriorIngreso:   {http.StatusUnprocessableEntity, 13002},
	service.ErrEstadoRequiereFecha:    {http.StatusUnprocessableEntity, 13003},

	service.ErrDiaNoLectivo:    {http.StatusUnprocessableEntity, 14001},
	service.ErrPeriodoNoExiste: {http.StatusNotFound, 14002},
	service.ErrSubjectNoExiste: {http.StatusNotFound, 14003},

	service.ErrCategoriaNoConfigurada: {http.StatusConflict, 15001},
	service.ErrCategoriaDeshabilitada: {http.StatusConflict, 15002},
	service.ErrPesoExcedeCategoria:    {http.StatusUnprocessableEntity, 15003},
	service.ErrItemNoEncontrado:       {http.StatusNotFound, 15004},
	service.ErrPuntosFueraDeRango:     {http.StatusUnprocessableEntity, 15005},

	service.ErrIndicadorNoEncontrado:   {http.StatusNotFound, 16001},
	service.ErrIndicadorDuplicado:      {http.StatusConflict, 16002},
	service.ErrIndicadorNoSeleccionado: {http.StatusUnprocessableEntity, 16003},
	service.ErrArchivoSinIndicadores:   {http.StatusUnprocessableEntity, 16004},

	service.ErrAlertaNoEncontrada:  {http.StatusNotFound, 17001},
	service.ErrEntradaNoEncontrada: {http.StatusNotFound, 17002},

	service.ErrExportSinEstudiantes: {http.StatusUnprocessableEntity, 18001},

	service.ErrAINoDisponible:       {http.StatusServiceUnavailable, 19001},
	service.ErrAILimiteExcedido:     {http.StatusTooManyRequests, 19002},
	service.ErrAIRespuestaInvalida:  {http.StatusBadGateway, 19003},
	service.ErrPruebaNoEncontrada:   {http.StatusNotFound, 19004},
	service.ErrPruebaSinCalificar:   {http.StatusUnprocessableEntity, 19005},
	service.ErrPerfilSinComentarios: {http.StatusUnprocessableEntity, 19006},
}

// WriteServiceError translates a service error into the response envelope.
// Business errors keep their Spanish message; anything unmapped is a 500.
func WriteServiceError(c *gin.Context, err error) {
	for sentinel, m := range serviceErrors {
		if errors.Is(err, sentinel) {
			response.Error(c, m.status, m.code, sentinel.Error())
			return
		}
	}
	response.InternalError(c)
}
