package domain

import (
	"sort"
	"strings"
)

// Sistema de reconocimiento "¿eres tú?": puntúa cada perfil conocido contra
// los campos parcialmente diligenciados del formulario y devuelve los
// candidatos más probables para evitar perfiles duplicados.

// Pesos por campo y umbral de admisión. Son pesos ad hoc, no un modelo
// estadístico: cambiarlos rompe la paridad de comportamiento.
const (
	PesoDocumento = 40.0
	PesoCorreo    = 30.0
	PesoTelefono  = 20.0
	PesoNombres   = 10.0

	UmbralSimilitud = 30.0
	MaxSimilares    = 3
)

// ConsultaSimilitud agrupa los campos del formulario en curso. Cualquiera
// puede venir vacío; un campo vacío no puntúa.
type ConsultaSimilitud struct {
	Nombres         string
	Correo          string
	NumeroDocumento string
	Telefono        string
}

// UsuarioSimilar es un candidato a duplicado con su puntaje y los campos
// que coincidieron.
type UsuarioSimilar struct {
	Usuario            *PerfilUsuario `json:"usuario"`
	Similitud          float64        `json:"similitud"`
	CamposCoincidentes []string       `json:"campos_coincidentes"`
}

// PuntuarSimilitud calcula el puntaje de un perfil contra la consulta:
//   - documento: coincidencia exacta (sensible a mayúsculas) → +40
//   - correo: coincidencia exacta ignorando mayúsculas → +30
//   - telefono: coincidencia exacta → +20
//   - nombres: solapamiento de tokens, (coincidencias / max(|a|,|b|)) * 10
func PuntuarSimilitud(u *PerfilUsuario, q ConsultaSimilitud) (float64, []string) {
	var similitud float64
	var campos []string

	if q.NumeroDocumento != "" && u.NumeroDocumento == q.NumeroDocumento {
		campos = append(campos, "documento")
		similitud += PesoDocumento
	}

	if q.Correo != "" && strings.EqualFold(u.Correo, q.Correo) {
		campos = append(campos, "correo")
		similitud += PesoCorreo
	}

	if q.Telefono != "" && u.Telefono == q.Telefono {
		campos = append(campos, "telefono")
		similitud += PesoTelefono
	}

	nombresPerfil := strings.Fields(strings.ToLower(u.Nombres))
	nombresEntrada := strings.Fields(strings.ToLower(q.Nombres))

	if len(nombresPerfil) > 0 && len(nombresEntrada) > 0 {
		conjunto := make(map[string]struct{}, len(nombresPerfil))
		for _, n := range nombresPerfil {
			conjunto[n] = struct{}{}
		}

		coincidencias := 0
		for _, n := range nombresEntrada {
			if _, ok := conjunto[n]; ok {
				coincidencias++
			}
		}

		if coincidencias > 0 {
			campos = append(campos, "nombres")
			mayor := len(nombresPerfil)
			if len(nombresEntrada) > mayor {
				mayor = len(nombresEntrada)
			}
			similitud += float64(coincidencias) / float64(mayor) * PesoNombres
		}
	}

	return similitud, campos
}

// BuscarSimilares escanea todos los perfiles, retiene los que alcanzan el
// umbral y devuelve a lo sumo MaxSimilares ordenados por puntaje descendente.
// Los empates conservan el orden de escaneo.
func BuscarSimilares(perfiles []*PerfilUsuario, q ConsultaSimilitud) []UsuarioSimilar {
	var similares []UsuarioSimilar

	for _, u := range perfiles {
		similitud, campos := PuntuarSimilitud(u, q)
		if similitud >= UmbralSimilitud {
			similares = append(similares, UsuarioSimilar{
				Usuario:            u,
				Similitud:          similitud,
				CamposCoincidentes: campos,
			})
		}
	}

	sort.SliceStable(similares, func(i, j int) bool {
		return similares[i].Similitud > similares[j].Similitud
	})

	if len(similares) > MaxSimilares {
		similares = similares[:MaxSimilares]
	}

	return similares
}
