package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func perfilDePrueba(nombres, correo, documento, telefono string) *PerfilUsuario {
	return &PerfilUsuario{
		Nombres:         nombres,
		Correo:          correo,
		NumeroDocumento: documento,
		Telefono:        telefono,
		Genero:          GeneroMujer,
		Estamento:       EstamentoInvitado,
	}
}

func TestPuntuarSimilitud_PesosPorCampo(t *testing.T) {
	tests := []struct {
		name      string
		perfil    *PerfilUsuario
		consulta  ConsultaSimilitud
		similitud float64
		campos    []string
	}{
		{
			name:      "documento exacto",
			perfil:    perfilDePrueba("Ana Ruiz", "ana@correo.co", "1234567", "3001112233"),
			consulta:  ConsultaSimilitud{NumeroDocumento: "1234567"},
			similitud: 40,
			campos:    []string{"documento"},
		},
		{
			name:      "correo ignora mayúsculas",
			perfil:    perfilDePrueba("Ana Ruiz", "Ana@Correo.Co", "1234567", "3001112233"),
			consulta:  ConsultaSimilitud{Correo: "ana@correo.co"},
			similitud: 30,
			campos:    []string{"correo"},
		},
		{
			name:      "telefono exacto",
			perfil:    perfilDePrueba("Ana Ruiz", "ana@correo.co", "1234567", "3001112233"),
			consulta:  ConsultaSimilitud{Telefono: "3001112233"},
			similitud: 20,
			campos:    []string{"telefono"},
		},
		{
			name:      "nombres solapamiento total",
			perfil:    perfilDePrueba("Ana Ruiz", "ana@correo.co", "1234567", "3001112233"),
			consulta:  ConsultaSimilitud{Nombres: "ana ruiz"},
			similitud: 10,
			campos:    []string{"nombres"},
		},
		{
			name:      "nombres solapamiento parcial",
			perfil:    perfilDePrueba("Ana María Ruiz Paz", "ana@correo.co", "1234567", "3001112233"),
			consulta:  ConsultaSimilitud{Nombres: "Ana Ruiz"},
			similitud: 2.0 / 4.0 * 10,
			campos:    []string{"nombres"},
		},
		{
			name:      "documento similar pero no exacto no puntúa",
			perfil:    perfilDePrueba("Ana Ruiz", "ana@correo.co", "1234567", "3001112233"),
			consulta:  ConsultaSimilitud{NumeroDocumento: "1234568"},
			similitud: 0,
			campos:    nil,
		},
		{
			name:      "nombres no usan subcadenas",
			perfil:    perfilDePrueba("Mariana Torres", "m@correo.co", "999", "300"),
			consulta:  ConsultaSimilitud{Nombres: "Maria"},
			similitud: 0,
			campos:    nil,
		},
		{
			name:      "todos los campos suman",
			perfil:    perfilDePrueba("Ana Ruiz", "ana@correo.co", "1234567", "3001112233"),
			consulta:  ConsultaSimilitud{Nombres: "Ana Ruiz", Correo: "ANA@CORREO.CO", NumeroDocumento: "1234567", Telefono: "3001112233"},
			similitud: 100,
			campos:    []string{"documento", "correo", "telefono", "nombres"},
		},
		{
			name:      "consulta vacía no puntúa nada",
			perfil:    perfilDePrueba("Ana Ruiz", "ana@correo.co", "1234567", "3001112233"),
			consulta:  ConsultaSimilitud{},
			similitud: 0,
			campos:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			similitud, campos := PuntuarSimilitud(tt.perfil, tt.consulta)
			assert.InDelta(t, tt.similitud, similitud, 1e-9)
			assert.Equal(t, tt.campos, campos)
		})
	}
}

func TestBuscarSimilares_UmbralDeAdmision(t *testing.T) {
	// telefono (20) + nombres (10) = 30 entra; solo telefono (20) no.
	perfiles := []*PerfilUsuario{
		perfilDePrueba("Ana Ruiz", "ana@correo.co", "111", "3001112233"),
		perfilDePrueba("Luis Paz", "luis@correo.co", "222", "3001112233"),
	}

	similares := BuscarSimilares(perfiles, ConsultaSimilitud{
		Nombres:  "Ana Ruiz",
		Telefono: "3001112233",
	})

	assert.Len(t, similares, 1)
	assert.Equal(t, "Ana Ruiz", similares[0].Usuario.Nombres)
	assert.GreaterOrEqual(t, similares[0].Similitud, UmbralSimilitud)
}

func TestBuscarSimilares_TopeYOrdenDescendente(t *testing.T) {
	var perfiles []*PerfilUsuario
	// cinco perfiles que superan el umbral con puntajes distintos
	for i := 0; i < 5; i++ {
		p := perfilDePrueba("Ana Ruiz", "ana@correo.co", "1234567", "3001112233")
		if i%2 == 0 {
			p.Correo = fmt.Sprintf("otro%d@correo.co", i) // pierden los 30 del correo
		}
		perfiles = append(perfiles, p)
	}

	similares := BuscarSimilares(perfiles, ConsultaSimilitud{
		Nombres:         "Ana Ruiz",
		Correo:          "ana@correo.co",
		NumeroDocumento: "1234567",
		Telefono:        "3001112233",
	})

	assert.Len(t, similares, MaxSimilares)
	for i := 1; i < len(similares); i++ {
		assert.GreaterOrEqual(t, similares[i-1].Similitud, similares[i].Similitud)
	}
	// los dos de mayor puntaje (100) quedan primero
	assert.InDelta(t, 100, similares[0].Similitud, 1e-9)
	assert.InDelta(t, 100, similares[1].Similitud, 1e-9)
}

func TestBuscarSimilares_PorDebajoDelUmbralNuncaAparece(t *testing.T) {
	perfiles := []*PerfilUsuario{
		perfilDePrueba("Carlos Gómez", "carlos@correo.co", "111", "3009998877"),
	}

	// solo telefono coincide: 20 < 30
	similares := BuscarSimilares(perfiles, ConsultaSimilitud{Telefono: "3009998877"})
	assert.Empty(t, similares)
}
