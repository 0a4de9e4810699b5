package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	"github.com/davicafu/asistencia-cultural/internal/usuario/application"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"
	usuarioHttp "github.com/davicafu/asistencia-cultural/internal/usuario/infra/inbound/http"
	"github.com/davicafu/asistencia-cultural/tests/mocks"
)

// perfilHTTPResponse define el formato que esperamos en las respuestas JSON
type perfilHTTPResponse struct {
	ID              string `json:"id"`
	Nombres         string `json:"nombres"`
	Correo          string `json:"correo"`
	NumeroDocumento string `json:"numero_documento"`
	Estamento       string `json:"estamento"`
}

func nuevoRouterUsuarios(repo *mocks.InMemoryUsuarioRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	asistencias := mocks.NewInMemoryAsistenciaRepo()
	cache := mocks.NewDummyCache()
	service := application.NewUsuarioService(repo, asistencias, cache, zap.NewNop())

	router := gin.New()
	usuarioHttp.RegisterUsuarioRoutes(router, usuarioHttp.NewUsuarioHandler(service))
	return router
}

func perfilSembrado() *usuarioDomain.PerfilUsuario {
	return &usuarioDomain.PerfilUsuario{
		ID:                uuid.New(),
		Nombres:           "Laura Quintero",
		Correo:            "laura.quintero@univ.edu.co",
		TipoDocumento:     "CC",
		NumeroDocumento:   "1004567890",
		Telefono:          "3001234567",
		Edad:              21,
		Genero:            usuarioDomain.GeneroMujer,
		Etnia:             "Ninguna",
		Sede:              "Principal",
		Estamento:         usuarioDomain.EstamentoEstudiante,
		CodigoEstudiante:  "20201001",
		Facultad:          "Artes",
		ProgramaAcademico: "Música",
		CreatedAt:         time.Now().UTC(),
	}
}

func TestObtenerUsuario_ContratoHTTP(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	router := nuevoRouterUsuarios(repo)

	perfil := perfilSembrado()
	assert.NoError(t, repo.Create(context.Background(), perfil, sharedDomain.OutboxEvent{ID: uuid.New()}))

	// Usuario existente
	req := httptest.NewRequest(http.MethodGet, "/usuarios/"+perfil.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp perfilHTTPResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, perfil.ID.String(), resp.ID)
	assert.Equal(t, perfil.Nombres, resp.Nombres)
	assert.Equal(t, perfil.Correo, resp.Correo)
	assert.Equal(t, string(usuarioDomain.EstamentoEstudiante), resp.Estamento)

	// Usuario inexistente
	req2 := httptest.NewRequest(http.MethodGet, "/usuarios/"+uuid.NewString(), nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)

	assert.Equal(t, http.StatusNotFound, rec2.Code)
	assert.Contains(t, rec2.Body.String(), "usuario no encontrado")
}

func TestRegistrarUsuario_ContratoHTTP(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	router := nuevoRouterUsuarios(repo)

	body := map[string]interface{}{
		"nombres":            "Andrés Felipe Mora",
		"correo":             "andres.mora@univ.edu.co",
		"tipo_documento":     "CC",
		"numero_documento":   "1007894561",
		"telefono":           "3017654321",
		"edad":               23,
		"genero":             "HOMBRE",
		"etnia":              "Ninguna",
		"sede":               "Principal",
		"estamento":          "ESTUDIANTE",
		"codigo_estudiante":  "20181234",
		"facultad":           "Ingeniería",
		"programa_academico": "Sistemas",
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/usuarios/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp perfilHTTPResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Andrés Felipe Mora", resp.Nombres)

	// Un perfil invalido no debe crear nada
	invalido := map[string]interface{}{
		"nombres":          "Perfil Incompleto",
		"correo":           "incompleto@univ.edu.co",
		"tipo_documento":   "CC",
		"numero_documento": "999",
		"telefono":         "300",
		"edad":             30,
		"genero":           "HOMBRE",
		"sede":             "Principal",
		"estamento":        "ESTUDIANTE", // estudiante sin campos académicos
	}
	payload2, _ := json.Marshal(invalido)

	req2 := httptest.NewRequest(http.MethodPost, "/usuarios/", bytes.NewReader(payload2))
	req2.Header.Set("Content-Type", "application/json")
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)

	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestBuscarSimilares_ContratoHTTP(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	router := nuevoRouterUsuarios(repo)

	perfil := perfilSembrado()
	assert.NoError(t, repo.Create(context.Background(), perfil, sharedDomain.OutboxEvent{ID: uuid.New()}))

	body := map[string]string{
		"numero_documento": perfil.NumeroDocumento,
		"correo":           "otra.persona@univ.edu.co",
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/usuarios/similares", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Similares []struct {
			Similitud          float64  `json:"similitud"`
			CamposCoincidentes []string `json:"campos_coincidentes"`
		} `json:"similares"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Similares, 1)
	assert.Equal(t, 40.0, resp.Similares[0].Similitud)
	assert.Contains(t, resp.Similares[0].CamposCoincidentes, "documento")
}
