package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	systemPromptClue = "You are playing codenames and it's your turn to give a clue. " +
		"Return the clue, followed by the number of words it links to, e.g: CLUE,3. " +
		"It is VERY IMPORTANT you say ONLY the clue word, followed by a comma, and then the number " +
		"of words it links to as a digit, e.g. CLUE,2 or GREEN,4"

	systemPromptGuess = "You are playing codenames and it's your turn to guess a word. " +
		"Return the words you think are most closely linked to the clue provided separated by " +
		"commas on a single line e.g: WORD1,WORD2,WORD3"
)

var ErrIncompleteReply = errors.New("oracle reply did not finish")

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAI asks a chat completion model for clues and guesses.
type OpenAI struct {
	logger *slog.Logger
	client *openai.Client
	model  string
}

func NewOpenAI(logger *slog.Logger, cfg OpenAIConfig) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		logger: logger.With("component", "oracle", "provider", "openai"),
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (that *OpenAI) GetClue(ctx context.Context, teamWords, opponentWords []string) (string, int, error) {
	log := that.logger.With("method", "GetClue")

	prompt := fmt.Sprintf(
		"Your team's words that you must link are [%s] and the other team's words that you MUST NOT link to are [%s]",
		strings.Join(teamWords, ","), strings.Join(opponentWords, ","),
	)

	content, err := that.complete(ctx, log, systemPromptClue, prompt)
	if err != nil {
		return "", 0, err
	}

	word, number, err := ParseClue(content)
	if err != nil {
		return "", 0, err
	}

	log.Debug("clue parsed", "word", word, "number", number)

	return word, number, nil
}

func (that *OpenAI) GetGuesses(ctx context.Context, clueWord string, candidates []string, count int) ([]string, error) {
	log := that.logger.With("method", "GetGuesses", "clue", clueWord)

	words := strings.Join(candidates, ",")
	prompt := fmt.Sprintf(
		"The possible words are [%s], you must choose the %d words from the list I have given you that link "+
			"most closely to '%s'. Make sure your guesses are from the list [%s], and all link to the clue '%s'",
		words, count, clueWord, words, clueWord,
	)

	content, err := that.complete(ctx, log, systemPromptGuess, prompt)
	if err != nil {
		return nil, err
	}

	guesses := ParseGuesses(content, candidates, count)
	log.Debug("guesses parsed", "reply", content, "guesses", guesses)

	return guesses, nil
}

func (that *OpenAI) complete(ctx context.Context, log *slog.Logger, system, user string) (string, error) {
	start := time.Now()

	resp, err := that.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: that.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	log.Debug("chat completion finished", "elapsed", time.Since(start))

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrIncompleteReply)
	}

	choice := resp.Choices[0]
	if choice.FinishReason != openai.FinishReasonStop {
		return "", fmt.Errorf("%w: finish reason %q", ErrIncompleteReply, choice.FinishReason)
	}

	return choice.Message.Content, nil
}
