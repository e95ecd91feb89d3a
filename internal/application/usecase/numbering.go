package usecase

import (
	"fmt"
	"strings"
	"time"
)

// Prefijos de numeración por entidad.
const (
	PrefijoOrden   = "OC"
	PrefijoFactura = "FAC"
)

// siguienteNumero genera el siguiente número correlativo del mes en curso con
// formato {PREFIJO}-{YYYYMM}-{NNN}: cuenta los números existentes que comparten
// el prefijo del mes y suma uno, con relleno a 3 dígitos.
//
// No es inmune a carreras: dos creaciones simultáneas en el mismo mes pueden
// calcular el mismo correlativo. La segunda cae en el chequeo de unicidad y el
// usuario reintenta; no hay bloqueo ni reintento automático.
func siguienteNumero(prefijo string, existentes []string, ahora time.Time) string {
	prefijoMes := fmt.Sprintf("%s-%04d%02d", prefijo, ahora.Year(), int(ahora.Month()))
	n := 0
	for _, numero := range existentes {
		if strings.HasPrefix(numero, prefijoMes) {
			n++
		}
	}
	return fmt.Sprintf("%s-%03d", prefijoMes, n+1)
}
