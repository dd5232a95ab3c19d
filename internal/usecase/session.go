package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/rocketscienceinc/codenames-backend/internal/entity"
	"github.com/rocketscienceinc/codenames-backend/internal/service"
)

type broadcaster interface {
	Broadcast(ctx context.Context, game *entity.Game, isTurnChange bool)
	Unicast(ctx context.Context, game *entity.Game, viewer *entity.Player) error
}

type botPlayer interface {
	PlayClue(ctx context.Context, session service.TurnTaker, seatID string, teamWords, avoidWords []string)
	PlayGuesses(ctx context.Context, session service.TurnTaker, seatID string, clue entity.Clue, candidates []string)
}

type command struct {
	apply func(ctx context.Context) error
	reply chan error
}

// Session owns one game. A single goroutine applies every command in arrival order,
// so each mutation, its broadcast and the AI scheduling it triggers happen as one step.
type Session struct {
	ID string

	logger *slog.Logger
	game   *entity.Game
	hub    broadcaster
	bots   botPlayer

	commands chan command
	done     chan struct{}

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
}

func NewSession(logger *slog.Logger, game *entity.Game, hub broadcaster, bots botPlayer) *Session {
	return &Session{
		ID:       game.ID,
		logger:   logger.With("component", "session", "sessionID", game.ID),
		game:     game,
		hub:      hub,
		bots:     bots,
		commands: make(chan command),
		done:     make(chan struct{}),
	}
}

// Start launches the command loop. The opening state is broadcast and, if red's
// spymaster is an AI seat, its clue is requested. Start after Close does nothing.
func (that *Session) Start(ctx context.Context) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.started || that.closed {
		return
	}

	that.started = true
	ctx, that.cancel = context.WithCancel(ctx)
	go that.run(ctx)
}

// Close stops the loop and waits for it to exit. Later calls fail with ErrSessionClosed.
func (that *Session) Close() {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		<-that.done
		return
	}

	that.closed = true
	started, cancel := that.started, that.cancel
	that.mu.Unlock()

	if !started {
		close(that.done)
		return
	}

	cancel()
	<-that.done
}

// Done is closed once the loop has exited.
func (that *Session) Done() <-chan struct{} {
	return that.done
}

func (that *Session) run(ctx context.Context) {
	defer close(that.done)

	log := that.logger.With("method", "run")
	log.Info("session started")

	that.afterTransition(ctx, true)

	for {
		select {
		case <-ctx.Done():
			log.Info("session stopped")
			return
		case cmd := <-that.commands:
			cmd.reply <- cmd.apply(ctx)
		}
	}
}

// do hands apply to the loop and waits for its result. Once accepted, a command always
// runs to completion.
func (that *Session) do(ctx context.Context, apply func(ctx context.Context) error) error {
	cmd := command{apply: apply, reply: make(chan error, 1)}

	select {
	case that.commands <- cmd:
	case <-that.done:
		return apperror.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	return <-cmd.reply
}

func (that *Session) SubmitClue(ctx context.Context, seatID, word string, number int) error {
	return that.do(ctx, func(ctx context.Context) error {
		log := that.logger.With("method", "SubmitClue", "seatID", seatID)

		seat, err := that.game.Seat(seatID)
		if err != nil {
			return err
		}

		if err = that.game.SubmitClue(*seat.Role, word, number); err != nil {
			return that.reject(log, err)
		}

		log.Info("clue accepted", "clue", that.game.Clue.Word, "number", number)

		that.afterTransition(ctx, true)

		return nil
	})
}

func (that *Session) SubmitGuess(ctx context.Context, seatID, word string) error {
	return that.do(ctx, func(ctx context.Context) error {
		log := that.logger.With("method", "SubmitGuess", "seatID", seatID, "word", word)

		seat, err := that.game.Seat(seatID)
		if err != nil {
			return err
		}

		index, err := that.game.Board.FindPlayable(word)
		if err != nil {
			return err
		}

		turnChanged, err := that.game.SubmitGuess(*seat.Role, index)
		if err != nil {
			return that.reject(log, err)
		}

		tile := that.game.Board.Tiles[index]
		log.Info("tile revealed", "team", tile.Team, "guessesRemaining", that.game.GuessesRemaining)
		if that.game.IsOver() {
			log.Info("game over", "winner", that.game.Outcome)
		}

		that.afterTransition(ctx, turnChanged)

		return nil
	})
}

func (that *Session) PassTurn(ctx context.Context, seatID string) error {
	return that.do(ctx, func(ctx context.Context) error {
		log := that.logger.With("method", "PassTurn", "seatID", seatID)

		seat, err := that.game.Seat(seatID)
		if err != nil {
			return err
		}

		if err = that.game.PassTurn(*seat.Role); err != nil {
			return that.reject(log, err)
		}

		log.Info("turn passed")

		that.afterTransition(ctx, true)

		return nil
	})
}

// RequestStateSnapshot sends the current projection to one seat only.
func (that *Session) RequestStateSnapshot(ctx context.Context, seatID string) error {
	return that.do(ctx, func(ctx context.Context) error {
		seat, err := that.game.Seat(seatID)
		if err != nil {
			return err
		}

		return that.hub.Unicast(ctx, that.game, seat)
	})
}

func (that *Session) TurnState(ctx context.Context) (entity.TurnState, error) {
	var state entity.TurnState

	err := that.do(ctx, func(context.Context) error {
		state = that.game.TurnState()
		return nil
	})

	return state, err
}

// View returns the projection seatID would currently receive.
func (that *Session) View(ctx context.Context, seatID string) (entity.StateView, error) {
	var view entity.StateView

	err := that.do(ctx, func(context.Context) error {
		seat, err := that.game.Seat(seatID)
		if err != nil {
			return err
		}

		view = service.ProjectFor(that.game, seat, false)
		return nil
	})

	return view, err
}

// Detach stops all traffic to a seat whose player left and hands the seat to the AI.
// If the seat owns the turn, the AI plays it right away.
func (that *Session) Detach(ctx context.Context, seatID string) error {
	return that.do(ctx, func(ctx context.Context) error {
		seat, err := that.game.Seat(seatID)
		if err != nil {
			return err
		}

		if !seat.IsHuman {
			return nil
		}

		seat.Conn = nil
		seat.IsHuman = false
		that.logger.Info("seat detached", "method", "Detach", "seatID", seatID)

		if !that.game.IsOver() && that.game.OnTurnSeat().ID == seatID {
			that.scheduleBot(ctx)
		}

		return nil
	})
}

func (that *Session) reject(log *slog.Logger, err error) error {
	if apperror.IsProtocolMisuse(err) {
		log.Info("ignoring action", "error", err, "turn", that.game.Turn.String())
		return nil
	}

	return fmt.Errorf("action rejected: %w", err)
}

// afterTransition broadcasts the new state and, when the turn changed hands,
// gives it to the AI seat that now owns it.
func (that *Session) afterTransition(ctx context.Context, turnChanged bool) {
	that.hub.Broadcast(ctx, that.game, turnChanged)

	if !turnChanged || that.game.IsOver() {
		return
	}

	that.scheduleBot(ctx)
}

// scheduleBot starts the AI for the on-turn seat unless a human holds it.
func (that *Session) scheduleBot(ctx context.Context) {
	seat := that.game.OnTurnSeat()
	if seat.IsHuman {
		return
	}

	board := that.game.Board
	team := seat.Role.Team()

	switch that.game.Phase() {
	case entity.PhaseAwaitingClue:
		teamWords := board.UnrevealedWords(func(tile entity.Tile) bool { return tile.Team == team })
		avoidWords := board.UnrevealedWords(func(tile entity.Tile) bool { return tile.Team != team })
		that.bots.PlayClue(ctx, that, seat.ID, teamWords, avoidWords)
	case entity.PhaseAwaitingGuess:
		that.bots.PlayGuesses(ctx, that, seat.ID, *that.game.Clue, board.UnrevealedWords(nil))
	case entity.PhaseOver:
	}
}
