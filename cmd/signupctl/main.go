package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte, headers map[string]string) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("SIGNUP_URL", "http://localhost:8080")
		out     = envOr("SIGNUP_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "signupctl",
		Short: "CLI para el servicio de registro de usuarios",
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del servicio (env SIGNUP_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}

	// ping: usa GET /readyz
	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Ping al servicio (GET /readyz)",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/readyz", nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("ping fallo: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}

	// register
	var regUsername, regEmail, regPassword, regLang string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Registrar un usuario (POST /api/1.0/users)",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{}
			// Omitimos flags no seteados para poder ejercitar los
			// mensajes de campo requerido del servidor.
			if cmd.Flags().Changed("username") {
				payload["username"] = regUsername
			}
			if cmd.Flags().Changed("email") {
				payload["email"] = regEmail
			}
			if cmd.Flags().Changed("password") {
				payload["password"] = regPassword
			}
			b, _ := json.Marshal(payload)

			var h map[string]string
			if regLang != "" {
				h = map[string]string{"Accept-Language": regLang}
			}
			status, body, err := cl.do("POST", "/api/1.0/users", b, h)
			if err != nil {
				return err
			}
			cl.print(status, body)
			if status/100 != 2 {
				return fmt.Errorf("register fallo: status=%d", status)
			}
			return nil
		},
	}
	registerCmd.Flags().StringVar(&regUsername, "username", "", "Username (4-32 caracteres)")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "Email del usuario")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "Password (min 6, mayúscula+minúscula+dígito)")
	registerCmd.Flags().StringVar(&regLang, "lang", "", "Locale para los mensajes de error (header Accept-Language)")

	root.AddCommand(pingCmd)
	root.AddCommand(registerCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
