package app

// Command representa o modo de execução da aplicação.
type Command string

const (
	// CommandServe inicia o servidor da API.
	CommandServe Command = "serve"
	// CommandMigrate aplica as migrações do banco.
	CommandMigrate Command = "migrate"
	// CommandHealthcheck consulta a saúde do servidor local.
	// Pensado para o healthcheck do Docker em imagens distroless.
	CommandHealthcheck Command = "healthcheck"
	// CommandExport gera o ZIP de lote pela linha de comando.
	CommandExport Command = "export"
)

// ParseCommand interpreta o subcomando dos argumentos.
// Sem argumentos ou com comando desconhecido, assume serve.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "healthcheck":
		return CommandHealthcheck
	case "export":
		return CommandExport
	default:
		return CommandServe
	}
}
