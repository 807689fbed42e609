// Package barcode serializa la identidad de una entidad en un payload JSON
// canónico, listo para codificarse en un código escaneable. Función pura:
// sin I/O ni efectos secundarios; el renderizado del código vive fuera.
package barcode

import "encoding/json"

// Tool identifica al sistema emisor dentro del payload.
const Tool = "AlmacenPro"

// Build produce el payload JSON para una entidad: las claves de extra más
// las fijas type, id, url y tool, con las claves en orden lexicográfico para
// que el mismo input produzca siempre el mismo string.
func Build(entityType, entityID, entityURL string, extra map[string]string) (string, error) {
	data := make(map[string]string, len(extra)+4)
	for k, v := range extra {
		data[k] = v
	}
	data["type"] = entityType
	data["id"] = entityID
	data["url"] = entityURL
	data["tool"] = Tool

	// encoding/json ordena las claves de un map lexicográficamente
	out, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
