package main_test

import (
	"os"
	"strings"
	"testing"
)

func TestDockerfileExists(t *testing.T) {
	if _, err := os.Stat("Dockerfile"); err != nil {
		t.Fatalf("Dockerfile deveria existir: %v", err)
	}
}

func TestDockerfileMultiStageBuild(t *testing.T) {
	data, err := os.ReadFile("Dockerfile")
	if err != nil {
		t.Fatalf("lendo Dockerfile: %v", err)
	}
	content := string(data)

	// build em múltiplos estágios: builder Go + imagem final enxuta
	if !strings.Contains(content, "FROM golang:") {
		t.Error("Dockerfile deveria ter um estágio builder Go (FROM golang:)")
	}

	lines := strings.Split(content, "\n")
	var lastFrom string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "FROM ") {
			lastFrom = trimmed
		}
	}
	if !strings.Contains(lastFrom, "gcr.io/distroless") && !strings.Contains(lastFrom, "alpine") && !strings.Contains(lastFrom, "scratch") {
		t.Errorf("estágio final deveria usar imagem mínima (distroless/alpine/scratch): %s", lastFrom)
	}
}

func TestDockerfileBinaryName(t *testing.T) {
	data, err := os.ReadFile("Dockerfile")
	if err != nil {
		t.Fatalf("lendo Dockerfile: %v", err)
	}

	if !strings.Contains(string(data), "plaquinhas") {
		t.Error("Dockerfile deveria construir o binário plaquinhas")
	}
}

func TestDockerfileCopySourcesExist(t *testing.T) {
	data, err := os.ReadFile("Dockerfile")
	if err != nil {
		t.Fatalf("lendo Dockerfile: %v", err)
	}

	// toda fonte de COPY do estágio builder precisa existir no repositório
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "COPY ") || strings.Contains(trimmed, "--from=") {
			continue
		}
		fields := strings.Fields(trimmed)
		for _, src := range fields[1 : len(fields)-1] {
			if src == "." {
				continue
			}
			if _, err := os.Stat(src); err != nil {
				t.Errorf("fonte de COPY ausente no repositório: %s", src)
			}
		}
	}
}

func TestDockerfileHealthcheckSubcommand(t *testing.T) {
	data, err := os.ReadFile("Dockerfile")
	if err != nil {
		t.Fatalf("lendo Dockerfile: %v", err)
	}
	content := string(data)

	// o healthcheck usa o próprio binário (imagem distroless sem curl)
	if !strings.Contains(content, "HEALTHCHECK") || !strings.Contains(content, "healthcheck") {
		t.Error("Dockerfile deveria usar o subcomando healthcheck no HEALTHCHECK")
	}
}

func TestDockerfileEntrypoint(t *testing.T) {
	data, err := os.ReadFile("Dockerfile")
	if err != nil {
		t.Fatalf("lendo Dockerfile: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "ENTRYPOINT") && !strings.Contains(content, "CMD") {
		t.Error("Dockerfile deveria ter ENTRYPOINT ou CMD")
	}
}

func TestDockerComposeExists(t *testing.T) {
	if _, err := os.Stat("docker-compose.yml"); err != nil {
		t.Fatalf("docker-compose.yml deveria existir: %v", err)
	}
}

func TestDockerComposeServices(t *testing.T) {
	data, err := os.ReadFile("docker-compose.yml")
	if err != nil {
		t.Fatalf("lendo docker-compose.yml: %v", err)
	}
	content := string(data)

	// 3 contêineres: api, gotenberg, db
	for _, svc := range []string{"api:", "gotenberg:", "db:"} {
		if !strings.Contains(content, svc) {
			t.Errorf("docker-compose.yml deveria ter o serviço %q", svc)
		}
	}
}

func TestDockerComposePostgres(t *testing.T) {
	data, err := os.ReadFile("docker-compose.yml")
	if err != nil {
		t.Fatalf("lendo docker-compose.yml: %v", err)
	}

	if !strings.Contains(string(data), "postgres:") {
		t.Error("docker-compose.yml deveria usar a imagem do PostgreSQL")
	}
}

func TestDockerComposeGotenbergWired(t *testing.T) {
	data, err := os.ReadFile("docker-compose.yml")
	if err != nil {
		t.Fatalf("lendo docker-compose.yml: %v", err)
	}

	if !strings.Contains(string(data), "GOTENBERG_URL") {
		t.Error("a api deveria receber GOTENBERG_URL apontando para o serviço gotenberg")
	}
}

func TestDockerComposeNetworks(t *testing.T) {
	data, err := os.ReadFile("docker-compose.yml")
	if err != nil {
		t.Fatalf("lendo docker-compose.yml: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "networks:") {
		t.Error("docker-compose.yml deveria definir redes")
	}
	// rede interna sem saída externa para db e gotenberg
	if !strings.Contains(content, "internal: true") {
		t.Error("docker-compose.yml deveria ter uma rede interna (internal: true)")
	}
}
