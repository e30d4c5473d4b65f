package di

import (
	"fmt"
	"net/http"

	"paradigm-agent/internal/application/port/input"
	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/application/service"
	"paradigm-agent/internal/domain/entity"
	"paradigm-agent/internal/infrastructure/goals"
	"paradigm-agent/internal/infrastructure/llm/langchain"
	"paradigm-agent/internal/infrastructure/llm/ollama"
	"paradigm-agent/internal/infrastructure/llm/openai"
	"paradigm-agent/internal/infrastructure/logger"
	"paradigm-agent/internal/infrastructure/userinteraction"
	"paradigm-agent/internal/usecase/agenttype"
	"paradigm-agent/internal/usecase/evaluator"
	"paradigm-agent/internal/usecase/react"
	"paradigm-agent/internal/usecase/rewoo"

	"github.com/google/uuid"
)

const (
	BackendOllama    = "ollama"
	BackendLangchain = "langchain"
	BackendOpenAI    = "openai"
)

type Config struct {
	Backend       string
	OllamaBaseURL string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	Language      string
	SystemPrompt  string
	LogDir        string
	LogLevel      string
	RepairJSON    bool
	EvaluateGoals bool

	// HTTPClient and UI replace the defaults when set.
	HTTPClient *http.Client
	UI         output.UserInteractionPort
}

// Container holds the session-wide components. Run-scoped ones (log file,
// backend client carrying the run logger) come from NewRun.
type Container struct {
	Config     Config
	UI         output.UserInteractionPort
	LLM        output.LLMPort
	Catalog    output.GoalCatalog
	Paradigms  *service.ParadigmRegistryImpl
	AgentTypes *service.AgentTypeRegistryImpl

	console *userinteraction.ConsoleUserInteraction
}

func NewContainer(cfg Config) (*Container, error) {
	if cfg.Backend == "" {
		cfg.Backend = BackendOllama
	}

	llm, err := newLLM(cfg, logger.NewNopLogger())
	if err != nil {
		return nil, err
	}

	catalog, err := goals.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load example goals: %w", err)
	}

	c := &Container{
		Config:     cfg,
		UI:         cfg.UI,
		LLM:        llm,
		Catalog:    catalog,
		Paradigms:  service.NewParadigmRegistry(),
		AgentTypes: service.NewAgentTypeRegistry(),
	}

	if c.UI == nil {
		console, err := userinteraction.NewConsoleUserInteraction()
		if err != nil {
			return nil, fmt.Errorf("failed to create console: %w", err)
		}
		c.console = console
		c.UI = console
	}

	registerParadigms(c.Paradigms, cfg)
	registerAgentTypes(c.AgentTypes)

	return c, nil
}

func (c *Container) Close() {
	if c.console != nil {
		c.console.Close()
	}
}

// Run is one goal execution: its id, log file and backend client.
type Run struct {
	ID     string
	Logger output.LoggerPort
	LLM    output.LLMPort
}

func (r *Run) Close() error {
	return r.Logger.Close()
}

func (c *Container) NewRun(goal string) (*Run, error) {
	id := uuid.NewString()

	log, err := logger.NewLoggerAdapter(goal, logger.Config{
		Dir:   c.Config.LogDir,
		Level: c.Config.LogLevel,
		RunID: id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	backend := c.Config.Backend
	if backend == "" {
		backend = BackendOllama
	}
	runLog := log.WithField("backend", backend)

	llm, err := newLLM(c.Config, runLog)
	if err != nil {
		log.Close()
		return nil, err
	}

	runLog.Info("Run created", "goal", goal)
	return &Run{ID: id, Logger: runLog, LLM: llm}, nil
}

// NewAgent builds the selected agent type around the selected paradigm.
func (c *Container) NewAgent(
	run *Run,
	paradigmType entity.ParadigmType,
	agentType entity.AgentType,
	model string,
) (input.AgentExecutor, error) {
	paradigmEntry, ok := c.Paradigms.Get(paradigmType)
	if !ok {
		return nil, fmt.Errorf("unknown paradigm %q", paradigmType)
	}
	agentEntry, ok := c.AgentTypes.Get(agentType)
	if !ok {
		return nil, fmt.Errorf("unknown agent type %q", agentType)
	}

	log := run.Logger.WithFields(map[string]any{
		"paradigm":   string(paradigmType),
		"agent_type": string(agentType),
		"model":      model,
	})

	paradigm := paradigmEntry.New(input.ParadigmDeps{
		Model:  model,
		LLM:    run.LLM,
		UI:     c.UI,
		Logger: log,
	})

	deps := input.AgentDeps{Logger: log}
	if c.Config.EvaluateGoals {
		deps.Evaluator = evaluator.New(run.LLM, log, evaluator.Config{
			Model:      model,
			System:     c.Config.SystemPrompt,
			RepairJSON: c.Config.RepairJSON,
		})
	}

	log.Info("Agent created")
	return agentEntry.New(paradigm, deps), nil
}

func newLLM(cfg Config, log output.LoggerPort) (output.LLMPort, error) {
	native := ollama.NewOllamaAdapter(ollama.Config{
		BaseURL:    cfg.OllamaBaseURL,
		HTTPClient: cfg.HTTPClient,
		Logger:     log,
	})

	switch cfg.Backend {
	case BackendOllama, "":
		return native, nil
	case BackendLangchain:
		return langchain.NewLangchainAdapter(langchain.Config{
			ServerURL:  native.BaseURL(),
			HTTPClient: cfg.HTTPClient,
			Lister:     native,
			Logger:     log,
		}), nil
	case BackendOpenAI:
		openaiCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" {
			openaiCfg.BaseURL = cfg.OpenAIBaseURL
		}
		openaiCfg.Logger = log
		return openai.NewOpenAIAdapter(openaiCfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM backend %q (want %s, %s or %s)", cfg.Backend, BackendOllama, BackendLangchain, BackendOpenAI)
	}
}

func registerParadigms(registry *service.ParadigmRegistryImpl, cfg Config) {
	registry.Register(entity.ParadigmReAct, "Reasoning and Acting: think, act and observe in a loop",
		func(d input.ParadigmDeps) input.Paradigm {
			return react.New(d.LLM, d.UI, d.Logger, react.Config{
				Model:      d.Model,
				Language:   cfg.Language,
				System:     cfg.SystemPrompt,
				RepairJSON: cfg.RepairJSON,
			})
		})
	registry.Register(entity.ParadigmReWOO, "Reasoning WithOut Observation: plan first, then execute each step",
		func(d input.ParadigmDeps) input.Paradigm {
			return rewoo.New(d.LLM, d.UI, d.Logger, rewoo.Config{
				Model:      d.Model,
				Language:   cfg.Language,
				System:     cfg.SystemPrompt,
				RepairJSON: cfg.RepairJSON,
			})
		})
}

func registerAgentTypes(registry *service.AgentTypeRegistryImpl) {
	registry.Register(entity.AgentTypeSimpleReflex, "Reacts to each result as it is, without state",
		func(p input.Paradigm, d input.AgentDeps) input.AgentExecutor {
			return agenttype.NewSimpleReflex(p)
		})
	registry.Register(entity.AgentTypeModelBasedReflex, "Keeps an internal model built from every result",
		func(p input.Paradigm, d input.AgentDeps) input.AgentExecutor {
			var opts []agenttype.Option
			if d.Logger != nil {
				opts = append(opts, agenttype.WithLogger(d.Logger))
			}
			if d.Evaluator != nil {
				opts = append(opts, agenttype.WithEvaluator(d.Evaluator))
			}
			return agenttype.NewModelBasedReflex(p, opts...)
		})
}
