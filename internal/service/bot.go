package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/codenames-backend/internal/apperror"
	"github.com/rocketscienceinc/codenames-backend/internal/entity"
)

// TurnTaker is the session surface an AI seat plays through. Every call is validated
// against the live game, so a decision that went stale while the oracle was thinking
// is simply ignored.
type TurnTaker interface {
	SubmitClue(ctx context.Context, seatID, word string, number int) error
	SubmitGuess(ctx context.Context, seatID, word string) error
	PassTurn(ctx context.Context, seatID string) error
	TurnState(ctx context.Context) (entity.TurnState, error)
}

type BotService interface {
	PlayClue(ctx context.Context, session TurnTaker, seatID string, teamWords, avoidWords []string)
	PlayGuesses(ctx context.Context, session TurnTaker, seatID string, clue entity.Clue, candidates []string)
	Wait()
}

type BotConfig struct {
	GuessDelay    time.Duration
	OracleTimeout time.Duration
}

type botService struct {
	logger *slog.Logger
	oracle ClueOracle
	clock  clockwork.Clock
	cfg    BotConfig

	running sync.WaitGroup
}

func NewBotService(logger *slog.Logger, oracle ClueOracle, clock clockwork.Clock, cfg BotConfig) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		oracle: oracle,
		clock:  clock,
		cfg:    cfg,
	}
}

// PlayClue asks the oracle for a clue in the background and submits it.
func (that *botService) PlayClue(ctx context.Context, session TurnTaker, seatID string, teamWords, avoidWords []string) {
	that.running.Add(1)

	go func() {
		defer that.running.Done()

		log := that.logger.With("method", "PlayClue", "seatID", seatID)

		word, number, err := that.getClue(ctx, teamWords, avoidWords)
		if err != nil {
			log.Error("oracle failed to produce a clue", "error", err)
			return
		}

		log.Info("submitting clue", "word", word, "number", number)

		if err = session.SubmitClue(ctx, seatID, word, number); err != nil {
			log.Warn("clue was not accepted", "error", err)
		}
	}()
}

// PlayGuesses asks the oracle for candidates and plays them one by one, re-reading the
// turn before each guess.
func (that *botService) PlayGuesses(ctx context.Context, session TurnTaker, seatID string, clue entity.Clue, candidates []string) {
	that.running.Add(1)

	go func() {
		defer that.running.Done()

		log := that.logger.With("method", "PlayGuesses", "seatID", seatID, "clue", clue.Word)

		guesses, err := that.getGuesses(ctx, clue, candidates)
		if err != nil {
			log.Error("oracle failed to produce guesses", "error", err)
			return
		}

		log.Info("oracle guesses", "guesses", guesses)

		if len(guesses) == 0 {
			that.pass(ctx, log, session, seatID)
			return
		}

		for len(guesses) > 0 {
			if !that.ownsTurn(ctx, log, session, seatID) {
				return
			}

			if err = that.sleep(ctx); err != nil {
				log.Debug("guess loop cancelled", "error", err)
				return
			}

			guess := guesses[0]
			guesses = guesses[1:]

			err = session.SubmitGuess(ctx, seatID, guess)
			switch {
			case err == nil:
			case errors.Is(err, apperror.ErrTileNotFound):
				log.Info("skipping unplayable guess", "guess", guess)
			default:
				log.Warn("guess was not accepted", "guess", guess, "error", err)
				return
			}
		}

		if that.ownsTurn(ctx, log, session, seatID) {
			that.pass(ctx, log, session, seatID)
		}
	}()
}

// Wait blocks until every background decision has finished.
func (that *botService) Wait() {
	that.running.Wait()
}

func (that *botService) getClue(ctx context.Context, teamWords, avoidWords []string) (string, int, error) {
	ctx, cancel := that.oracleContext(ctx)
	defer cancel()

	return that.oracle.GetClue(ctx, teamWords, avoidWords)
}

func (that *botService) getGuesses(ctx context.Context, clue entity.Clue, candidates []string) ([]string, error) {
	if clue.Number <= 0 {
		return nil, nil
	}

	ctx, cancel := that.oracleContext(ctx)
	defer cancel()

	return that.oracle.GetGuesses(ctx, clue.Word, candidates, clue.Number)
}

func (that *botService) oracleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if that.cfg.OracleTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, that.cfg.OracleTimeout)
}

func (that *botService) ownsTurn(ctx context.Context, log *slog.Logger, session TurnTaker, seatID string) bool {
	state, err := session.TurnState(ctx)
	if err != nil {
		log.Warn("failed to read turn state", "error", err)
		return false
	}

	switch {
	case state.Outcome != entity.OutcomeNone:
		log.Info("game is over, stopping", "winner", state.Outcome)
		return false
	case state.OnTurnSeatID != seatID:
		log.Info("turn has moved on, stopping", "turn", state.Turn.String())
		return false
	case state.GuessesRemaining <= 0:
		log.Info("no guesses remaining, stopping")
		return false
	}

	return true
}

func (that *botService) pass(ctx context.Context, log *slog.Logger, session TurnTaker, seatID string) {
	log.Info("passing turn")

	if err := session.PassTurn(ctx, seatID); err != nil {
		log.Warn("pass was not accepted", "error", err)
	}
}

func (that *botService) sleep(ctx context.Context) error {
	if that.cfg.GuessDelay <= 0 {
		return ctx.Err()
	}

	timer := that.clock.NewTimer(that.cfg.GuessDelay)
	defer timer.Stop()

	select {
	case <-timer.Chan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
