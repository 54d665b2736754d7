package server

import (
	"errors"
	"io"
	"net/http"

	"dario.cat/mergo"
	"github.com/go-chi/chi/v5"

	"github.com/trly/dockr/internal/catalog"
	"github.com/trly/dockr/internal/compose"
	"github.com/trly/dockr/internal/dockerfile"
	"github.com/trly/dockr/internal/history"
	"github.com/trly/dockr/internal/service"
)

// Download names and media types.
const (
	composeFilename          = "docker-compose.yml"
	secureDockerfileFilename = "Dockerfile.secure"
	dockerfileFilename       = "Dockerfile"
	yamlContentType          = "text/yaml; charset=utf-8"
	textContentType          = "text/plain; charset=utf-8"
)

// ComposeResponse is the data of POST /api/compose.
type ComposeResponse struct {
	compose.Result
	Warnings []string `json:"warnings"`
}

// DockerfileResponse is the data of POST /api/dockerfile.
type DockerfileResponse struct {
	dockerfile.Result
	Findings []dockerfile.Finding `json:"findings"`
}

// HistoryResponse is the data of the history routes.
type HistoryResponse struct {
	Entries []string `json:"entries"`
}

type recordRequest struct {
	Command string `json:"command"`
}

func (s *Server) handleDefaultProject(w http.ResponseWriter, _ *http.Request) {
	sendSuccess(w, service.DefaultProject())
}

// readProject decodes a project body over the default security and network
// settings.
func (s *Server) readProject(w http.ResponseWriter, r *http.Request) (*service.Project, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	p, err := service.DecodeProject(data, service.FormatJSON)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return p, true
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	p, ok := s.readProject(w, r)
	if !ok {
		return
	}
	sendSuccess(w, ComposeResponse{
		Result:   s.composeGen.Generate(p),
		Warnings: compose.Lint(p).Messages(),
	})
}

func (s *Server) handleComposeDownload(w http.ResponseWriter, r *http.Request) {
	p, ok := s.readProject(w, r)
	if !ok {
		return
	}
	res := s.composeGen.Generate(p)
	s.history.Record(history.ComposeDownloadMarker(composeFilename))
	sendAttachment(w, composeFilename, yamlContentType, res.Compose)
}

func (s *Server) handleSecureDockerfileDownload(w http.ResponseWriter, _ *http.Request) {
	s.history.Record(history.ComposeDownloadMarker(secureDockerfileFilename))
	sendAttachment(w, secureDockerfileFilename, textContentType, compose.SecureDockerfile(s.composeGen.Name()))
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	sendSuccess(w, s.presets.Names())
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	f, err := dockerfile.NewForm(s.presets, chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, dockerfile.ErrUnknownPreset) {
			sendError(w, http.StatusNotFound, err.Error())
			return
		}
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(w, f)
}

func (s *Server) handleDockerfile(w http.ResponseWriter, r *http.Request) {
	var f dockerfile.Form
	if !decodeJSON(w, r, &f) {
		return
	}
	res := s.dockerGen.Generate(&f)
	findings, err := dockerfile.Lint(res.Dockerfile)
	if err != nil {
		s.logger.Warn("Failed to lint generated Dockerfile", "error", err)
	}
	if findings == nil {
		findings = []dockerfile.Finding{}
	}
	sendSuccess(w, DockerfileResponse{Result: res, Findings: findings})
}

func (s *Server) handleDockerfileDownload(w http.ResponseWriter, r *http.Request) {
	var f dockerfile.Form
	if !decodeJSON(w, r, &f) {
		return
	}
	s.history.Record(history.FileDownloadMarker(dockerfileFilename))
	sendAttachment(w, dockerfileFilename, textContentType, s.dockerGen.Generate(&f).Dockerfile)
}

func (s *Server) handleDockerfileComposeDownload(w http.ResponseWriter, r *http.Request) {
	var f dockerfile.Form
	if !decodeJSON(w, r, &f) {
		return
	}
	s.history.Record(history.FileDownloadMarker(composeFilename))
	sendAttachment(w, composeFilename, yamlContentType, s.dockerGen.Generate(&f).Compose)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vars := catalog.Vars{
		Image:         q.Get("image"),
		Tag:           q.Get("tag"),
		Container:     q.Get("container"),
		Network:       q.Get("network"),
		Registry:      q.Get("registry"),
		Source:        q.Get("source"),
		Destination:   q.Get("destination"),
		DockerRoot:    q.Get("dockerRoot"),
		NewDockerRoot: q.Get("newDockerRoot"),
	}
	if err := mergo.Merge(&vars, s.catalogVars); err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries, err := s.catalog.Search(catalog.Query{
		Section:  q.Get("section"),
		Category: q.Get("category"),
		Term:     q.Get("q"),
	}, vars)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(w, entries)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	filter, err := history.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	sendSuccess(w, HistoryResponse{Entries: s.history.Search(r.URL.Query().Get("q"), filter)})
}

func (s *Server) handleHistoryRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.history.Record(req.Command)
	sendSuccess(w, HistoryResponse{Entries: s.history.Entries()})
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, _ *http.Request) {
	s.history.Clear()
	sendSuccess(w, HistoryResponse{Entries: []string{}})
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, _ *http.Request) {
	sendAttachment(w, history.ExportFilename(s.now()), textContentType, s.history.Export())
}
