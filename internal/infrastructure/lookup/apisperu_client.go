// Package lookup cliente del proveedor de consultas RENIEC (DNI) y SUNAT (RUC).
// Compatible con la API v2 de apis.net.pe: GET {base}/reniec/dni?numero=… y
// GET {base}/sunat/ruc?numero=… con token Bearer.
package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/application/ports"
	"github.com/brickapp/brickapp-api/internal/domain"
)

// tamaño máximo de respuesta aceptado.
const maxBody = 1 << 20

// Client implementa ports.DocumentoLookup.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ ports.DocumentoLookup = (*Client)(nil)

// NewClient construye el cliente con el timeout de red indicado.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ConsultarDNI consulta RENIEC.
func (c *Client) ConsultarDNI(ctx context.Context, dni string) (*dto.PersonaResponse, error) {
	body, err := c.get(ctx, "/reniec/dni", dni)
	if err != nil {
		return nil, err
	}
	r := gjson.ParseBytes(body)
	p := &dto.PersonaResponse{
		DNI:             first(r, "numeroDocumento", "dni", "numero"),
		Nombres:         normalizar(first(r, "nombres", "nombre")),
		ApellidoPaterno: normalizar(first(r, "apellidoPaterno", "apellido_paterno")),
		ApellidoMaterno: normalizar(first(r, "apellidoMaterno", "apellido_materno")),
		NombreCompleto:  normalizar(first(r, "nombreCompleto", "nombre_completo")),
	}
	if p.DNI == "" {
		p.DNI = dni
	}
	if p.NombreCompleto == "" {
		p.NombreCompleto = strings.Join(noVacios(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno), " ")
	}
	if p.NombreCompleto == "" {
		return nil, fmt.Errorf("%w: respuesta RENIEC sin nombres", domain.ErrLookupFailed)
	}
	return p, nil
}

// ConsultarRUC consulta SUNAT.
func (c *Client) ConsultarRUC(ctx context.Context, ruc string) (*dto.EmpresaSunatResponse, error) {
	body, err := c.get(ctx, "/sunat/ruc", ruc)
	if err != nil {
		return nil, err
	}
	r := gjson.ParseBytes(body)
	e := &dto.EmpresaSunatResponse{
		RUC:          first(r, "numeroDocumento", "ruc", "numero"),
		RazonSocial:  normalizar(first(r, "razonSocial", "razon_social", "nombre")),
		Estado:       normalizar(first(r, "estado")),
		Condicion:    normalizar(first(r, "condicion")),
		Direccion:    normalizar(first(r, "direccion")),
		Distrito:     normalizar(first(r, "distrito")),
		Provincia:    normalizar(first(r, "provincia")),
		Departamento: normalizar(first(r, "departamento")),
	}
	if e.RUC == "" {
		e.RUC = ruc
	}
	if e.RazonSocial == "" {
		return nil, fmt.Errorf("%w: respuesta SUNAT sin razón social", domain.ErrLookupFailed)
	}
	return e, nil
}

func (c *Client) get(ctx context.Context, path, numero string) ([]byte, error) {
	u := c.baseURL + path + "?numero=" + url.QueryEscape(numero)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrLookupFailed, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: documento %s no encontrado", domain.ErrNotFound, numero)
	case resp.StatusCode == http.StatusUnprocessableEntity:
		// el proveedor responde 422 para números inexistentes con formato válido
		return nil, fmt.Errorf("%w: documento %s no encontrado", domain.ErrNotFound, numero)
	case resp.StatusCode != http.StatusOK:
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = gjson.GetBytes(body, "error").String()
		}
		return nil, fmt.Errorf("%w: proveedor respondió %d %s", domain.ErrLookupFailed, resp.StatusCode, msg)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: respuesta no es JSON", domain.ErrLookupFailed)
	}
	// algunos planes envuelven el resultado en {"data": {...}}
	if d := gjson.GetBytes(body, "data"); d.IsObject() {
		return []byte(d.Raw), nil
	}
	return body, nil
}

// first devuelve el primer campo no vacío entre las rutas indicadas.
func first(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := strings.TrimSpace(r.Get(p).String()); v != "" {
			return v
		}
	}
	return ""
}

// normalizar mayúsculas con reglas del español y espacios simples.
// cases.Caser guarda estado: uno por llamada.
func normalizar(s string) string {
	return cases.Upper(language.Spanish).String(strings.Join(strings.Fields(s), " "))
}

func noVacios(xs ...string) []string {
	out := xs[:0]
	for _, x := range xs {
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}
