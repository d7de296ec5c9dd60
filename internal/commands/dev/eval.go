// Package dev - !eval command
package dev

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/config"
	"github.com/TrapoCloud/TrapoBotGo/pkg/database"
	"github.com/TrapoCloud/TrapoBotGo/pkg/discord"
	"github.com/TrapoCloud/TrapoBotGo/pkg/errors"
	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// createEvalCommand creates the !eval command
func createEvalCommand() *discord.Command {
	return discord.NewCommand(
		"eval",
		"Evalúa código Go y muestra estructuras internas (Peligroso)",
		"dev",
		evalHandler,
	).WithUsage("eval <code>").
		AsOwnerOnly()
}

// evalHandler handles the !eval command
func evalHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		start := time.Now()

		// Limpieza del código de entrada: quitar bloques markdown si existen
		code := ctx.ArgsFrom(0)
		code = strings.TrimPrefix(code, "```go")
		code = strings.TrimPrefix(code, "```")
		code = strings.TrimSuffix(code, "```")
		code = strings.TrimSpace(code)

		if code == "" {
			ctx.Reply("❌ Debes proporcionar código a evaluar.")
			return
		}

		// Inicializar el intérprete Yaegi
		i := interp.New(interp.Options{})

		// Cargar librería estándar de Go (fmt, strings, os, etc.)
		if err := i.Use(stdlib.Symbols); err != nil {
			ctx.Reply(fmt.Sprintf("❌ Error cargando stdlib: %v", err))
			return
		}

		// Inyección de variables del bot usando Exports: 'Ctx', 'Bot', 'DB'
		// quedan disponibles directamente en el código evaluado
		botExports := map[string]reflect.Value{
			"Ctx":     reflect.ValueOf(ctx),
			"Bot":     reflect.ValueOf(ctx.Client),
			"Session": reflect.ValueOf(ctx.Session),
			"DB":      reflect.ValueOf(database.Get()),
			"Config":  reflect.ValueOf(config.Get()),
		}

		if err := i.Use(interp.Exports{
			"github.com/TrapoCloud/TrapoBotGo/internal/commands/dev/dev": botExports,
		}); err != nil {
			ctx.Reply(fmt.Sprintf("❌ Error registrando variables: %v", err))
			return
		}

		if _, err := i.Eval(`import . "github.com/TrapoCloud/TrapoBotGo/internal/commands/dev"`); err != nil {
			ctx.Reply(fmt.Sprintf("❌ Error importando variables: %v", err))
			return
		}

		// Ejecutar el código del usuario
		res, err := i.Eval(code)

		var output string
		if err != nil {
			output = fmt.Sprintf("❌ **Error de Ejecución:**\n```go\n%v\n```", err)
		} else {
			var resStr string
			if res.IsValid() {
				// %#v muestra la estructura interna completa
				resStr = fmt.Sprintf("%#v", res.Interface())
			} else {
				resStr = "nil"
			}
			if len(resStr) > 1900 {
				resStr = resStr[:1900] + "... (truncado)"
			}
			output = fmt.Sprintf("✅ **Resultado:**\n```go\n%s\n```", resStr)
		}

		elapsed := time.Since(start)
		logger.Debug(fmt.Sprintf("Eval completado en %s. Limpiando contexto Yaegi...", elapsed), "DevEval")

		ctx.Reply(output)
	}()
	return nil
}
