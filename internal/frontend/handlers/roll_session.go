// Package handlers provides Telnet session handling and command processing
// for the roll service.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicebox/internal/dice"
	"github.com/cory-johannsen/dicebox/internal/frontend/telnet"
	"github.com/cory-johannsen/dicebox/internal/storage/postgres"
)

// MacroStore defines the macro persistence operations required by RollHandler.
type MacroStore interface {
	Upsert(ctx context.Context, name, notation string) (postgres.Macro, error)
	GetByName(ctx context.Context, name string) (postgres.Macro, error)
	List(ctx context.Context) ([]postgres.Macro, error)
	Delete(ctx context.Context, name string) error
}

const welcomeBanner = `
` + telnet.Bold + telnet.BrightCyan + `
  ██████╗ ██╗ ██████╗███████╗██████╗  ██████╗ ██╗  ██╗
  ██╔══██╗██║██╔════╝██╔════╝██╔══██╗██╔═══██╗╚██╗██╔╝
  ██║  ██║██║██║     █████╗  ██████╔╝██║   ██║ ╚███╔╝
  ██║  ██║██║██║     ██╔══╝  ██╔══██╗██║   ██║ ██╔██╗
  ██████╔╝██║╚██████╗███████╗██████╔╝╚██████╔╝██╔╝ ██╗
  ╚═════╝ ╚═╝ ╚═════╝╚══════╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝` + telnet.Reset + `

  Type ` + telnet.Green + `roll <notation>` + telnet.Reset + ` to roll dice (e.g. roll 3d6+2).
  Type ` + telnet.Green + `macro save <name> <notation>` + telnet.Reset + ` to store a macro.
  Type ` + telnet.Green + `help` + telnet.Reset + ` for the full command list.
  Type ` + telnet.Green + `quit` + telnet.Reset + ` to disconnect.
`

const helpText = `Commands:
  roll <notation>              roll dice notation, e.g. roll 2d10+4 or roll 3>6!10
  best <keep> <count> <sides>  sum the <keep> highest of <count> d<sides>
  worst <keep> <count> <sides> sum the <keep> lowest of <count> d<sides>
  macro save <name> <notation> store (or replace) a named macro
  macro list                   list stored macros
  macro del <name>             delete a macro
  <name>                       roll a stored macro by name
  quit                         disconnect`

// RollHandler implements telnet.SessionHandler and processes the roll
// command loop for a connected client.
type RollHandler struct {
	roller         *dice.Roller
	macros         MacroStore
	logger         *zap.Logger
	maxNotationLen int
}

// NewRollHandler creates a RollHandler backed by the given roller and macro store.
//
// Precondition: roller, macros, and logger must be non-nil; maxNotationLen must be positive.
// Postcondition: Returns a RollHandler ready to handle sessions.
func NewRollHandler(roller *dice.Roller, macros MacroStore, logger *zap.Logger, maxNotationLen int) *RollHandler {
	return &RollHandler{
		roller:         roller,
		macros:         macros,
		logger:         logger,
		maxNotationLen: maxNotationLen,
	}
}

// HandleSession implements telnet.SessionHandler. It shows the welcome banner
// and processes roll commands until the client quits.
//
// Postcondition: Returns nil on clean quit, or an error if the session ended abnormally.
func (h *RollHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	addr := conn.RemoteAddr().String()

	if err := conn.Write([]byte(welcomeBanner)); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return ctx.Err()
		default:
		}

		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "> ")); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "quit", "exit":
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Goodbye!"))
			h.logger.Info("session quit",
				zap.String("remote_addr", addr),
				zap.Duration("duration", time.Since(start)),
			)
			return nil
		case "help":
			_ = conn.WriteLine(helpText)
		case "roll":
			h.handleRoll(conn, strings.Join(args, " "))
		case "best":
			h.handleKeep(conn, args, true)
		case "worst":
			h.handleKeep(conn, args, false)
		case "macro":
			h.handleMacro(ctx, conn, args)
		default:
			// A bare word is treated as a macro name.
			h.handleMacroRoll(ctx, conn, cmd)
		}
	}
}

// handleRoll compiles and executes notation, reporting the total or an error.
func (h *RollHandler) handleRoll(conn *telnet.Conn, notation string) {
	notation = strings.TrimSpace(notation)
	if notation == "" {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: roll <notation>"))
		return
	}
	if len(notation) > h.maxNotationLen {
		_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Notation too long (max %d characters).", h.maxNotationLen))
		return
	}

	rule := dice.Compile(notation)
	if rule.Len() == 0 {
		_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unrecognized notation %q.", notation))
		return
	}

	total, err := h.execute(rule)
	if err != nil {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, err.Error()))
		return
	}
	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen, "%s = %d", rule.Text(), total))
}

// handleKeep handles the best/worst commands.
func (h *RollHandler) handleKeep(conn *telnet.Conn, args []string, best bool) {
	name := "worst"
	if best {
		name = "best"
	}
	if len(args) != 3 {
		_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Usage: %s <keep> <count> <sides>", name))
		return
	}
	vals := make([]int32, 3)
	for i, a := range args {
		v, err := parseInt32(a)
		if err != nil {
			_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Invalid number %q.", a))
			return
		}
		vals[i] = v
	}

	var total int32
	if best {
		total = h.roller.BestOf(vals[0], vals[1], vals[2])
	} else {
		total = h.roller.WorstOf(vals[0], vals[1], vals[2])
	}
	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen, "%s %d of %dd%d = %d", name, vals[0], vals[1], vals[2], total))
}

// handleMacro dispatches macro subcommands: save, list, del.
func (h *RollHandler) handleMacro(ctx context.Context, conn *telnet.Conn, args []string) {
	if len(args) == 0 {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: macro save|list|del ..."))
		return
	}

	switch strings.ToLower(args[0]) {
	case "save":
		if len(args) < 3 {
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: macro save <name> <notation>"))
			return
		}
		name := strings.ToLower(args[1])
		notation := strings.Join(args[2:], " ")
		macro, err := h.macros.Upsert(ctx, name, notation)
		if err != nil {
			if errors.Is(err, postgres.ErrInvalidNotation) {
				_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unrecognized notation %q.", notation))
			} else {
				h.logger.Error("saving macro", zap.String("name", name), zap.Error(err))
				_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Could not save macro."))
			}
			return
		}
		_ = conn.WriteLine(telnet.Colorf(telnet.Green, "Saved %s = %s", macro.Name, macro.Notation))
	case "list":
		macros, err := h.macros.List(ctx)
		if err != nil {
			h.logger.Error("listing macros", zap.Error(err))
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Could not list macros."))
			return
		}
		if len(macros) == 0 {
			_ = conn.WriteLine(telnet.Colorize(telnet.Dim, "No macros stored."))
			return
		}
		for _, m := range macros {
			_ = conn.WriteLine(fmt.Sprintf("  %s%s%s = %s", telnet.Cyan, m.Name, telnet.Reset, m.Notation))
		}
	case "del":
		if len(args) != 2 {
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: macro del <name>"))
			return
		}
		name := strings.ToLower(args[1])
		if err := h.macros.Delete(ctx, name); err != nil {
			if errors.Is(err, postgres.ErrMacroNotFound) {
				_ = conn.WriteLine(telnet.Colorf(telnet.Red, "No macro named %q.", name))
			} else {
				h.logger.Error("deleting macro", zap.String("name", name), zap.Error(err))
				_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Could not delete macro."))
			}
			return
		}
		_ = conn.WriteLine(telnet.Colorf(telnet.Green, "Deleted %s.", name))
	default:
		_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown macro subcommand %q.", args[0]))
	}
}

// handleMacroRoll looks up a stored macro by name and rolls its notation.
func (h *RollHandler) handleMacroRoll(ctx context.Context, conn *telnet.Conn, name string) {
	macro, err := h.macros.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, postgres.ErrMacroNotFound) {
			_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown command or macro %q. Type help for commands.", name))
		} else {
			h.logger.Error("loading macro", zap.String("name", name), zap.Error(err))
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Could not load macro."))
		}
		return
	}

	rule := dice.Compile(macro.Notation)
	total, err := h.execute(rule)
	if err != nil {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, err.Error()))
		return
	}
	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen, "%s: %s = %d", macro.Name, rule.Text(), total))
}

// execute runs a compiled rule, converting evaluation panics (such as a /0
// step) into errors so one bad roll does not kill the session.
func (h *RollHandler) execute(rule *dice.Rule) (total int32, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluating %q: %v", rule.Text(), r)
		}
	}()
	return h.roller.RollRule(rule), nil
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
