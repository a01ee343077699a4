package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/smartstudy/planner/config"
	"github.com/smartstudy/planner/models"
	"github.com/smartstudy/planner/utils"
)

// Prompt variety pools, sampled per request so repeated calls read differently.
var focusAreas = []string{
	"problem-solving", "debugging", "learning new frameworks",
	"building projects", "algorithm practice", "code optimization",
	"skill development", "programming challenges", "web development",
	"software engineering", "data structures", "clean code practices",
}

var messageStyles = []string{
	"casual and friendly",
	"inspiring and motivational",
	"encouraging and supportive",
	"energetic and enthusiastic",
	"wise and mentoring",
	"playful and fun",
	"confident and empowering",
}

var openingStyles = []string{
	"Start with an action word or emoji",
	"Begin with a statement about progress",
	"Open with a study-related metaphor",
	"Start with current time/situation reference",
	"Begin with an achievement acknowledgment",
	"Open with a future-focused statement",
	"Begin with XP or level reference creatively",
	"Open with streak motivation uniquely",
}

// MotivationService produces short motivational messages for an account,
// preferring the Gemini backend and falling back to canned templates. It never
// returns an error to callers.
type MotivationService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	nowFn   func() time.Time
}

// NewMotivationService builds the service from configuration. An empty API key
// or a failed client init leaves the backend nil; all requests then take the
// fallback path.
func NewMotivationService() *MotivationService {
	cfg := config.Get()
	svc := &MotivationService{
		model:   cfg.GeminiModel,
		timeout: time.Duration(cfg.MotivationTimeoutSec) * time.Second,
		nowFn:   time.Now,
	}
	if cfg.GeminiAPIKey == "" {
		return svc
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("gemini client init failed, using fallback messages: %v", err)
		}
		return svc
	}
	svc.client = client
	return svc
}

// promptContext carries the account snapshot embedded into the prompt.
type promptContext struct {
	Interests string
	Level     int
	XP        int
	Streak    int
	TotalDays int
	TimeOfDay string
	FocusArea string
	State     string
}

// GenerateMessage returns a motivational message for the user. All backend
// failures (unconfigured, timeout, transport error, empty response) map to a
// canned message for the account's streak tier.
func (m *MotivationService) GenerateMessage(ctx context.Context, user *models.User) string {
	if m.client == nil {
		return m.fallbackMessage(user)
	}

	prompt := m.buildPrompt(m.buildContext(user))

	genCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	resp, err := m.client.Models.GenerateContent(genCtx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](1.1),
		MaxOutputTokens: 120,
	})
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("motivation generation failed for user %d: %v", user.ID, err)
		}
		return m.fallbackMessage(user)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return m.fallbackMessage(user)
	}
	return text
}

func (m *MotivationService) buildContext(user *models.User) promptContext {
	interests := strings.TrimSpace(user.Interests)
	if interests == "" {
		interests = "general studies"
	}
	return promptContext{
		Interests: interests,
		Level:     user.Level(),
		XP:        user.XP,
		Streak:    user.Streak,
		TotalDays: user.TotalDaysLogged,
		TimeOfDay: timeOfDay(m.nowFn().Hour()),
		FocusArea: focusAreas[rand.Intn(len(focusAreas))],
		State:     motivationState(user),
	}
}

// motivationState classifies the account into a tone bucket, streak tiers first.
func motivationState(user *models.User) string {
	switch {
	case user.Streak >= 14:
		return "streak_master"
	case user.Streak >= 7:
		return "consistent"
	case user.Streak >= 3:
		return "building_habit"
	case user.Level() >= 5:
		return "experienced"
	default:
		return "beginner"
	}
}

// timeOfDay buckets a wall-clock hour: morning 5-11, afternoon 12-16,
// evening 17-20, night otherwise.
func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

func (m *MotivationService) buildPrompt(pc promptContext) string {
	style := messageStyles[rand.Intn(len(messageStyles))]
	opening := openingStyles[rand.Intn(len(openingStyles))]

	var b strings.Builder
	fmt.Fprintf(&b, "You are a supportive study mentor and motivational coach. Create a unique motivational message for a %s enthusiast (request #%d).\n\n", strings.ToLower(pc.Interests), rand.Intn(1000)+1)
	fmt.Fprintf(&b, "User context:\n- Interests: %s\n- Current level: %d\n- Experience points: %d\n- Login streak: %d days\n- Total study days: %d\n- Time: %s\n- Focus area: %s\n\n", pc.Interests, pc.Level, pc.XP, pc.Streak, pc.TotalDays, pc.TimeOfDay, pc.FocusArea)
	fmt.Fprintf(&b, "Requirements:\n1. %s\n2. Make it %s in tone\n3. Reference their %d XP and level %d naturally\n4. Keep it 1-2 sentences (maximum 140 characters)\n5. Use at most 2-3 emojis\n6. Never open with a generic greeting like \"Hey\", \"Hello\" or \"Hi there\"\n7. Focus on %s %s vibes\n\n", opening, style, pc.XP, pc.Level, pc.TimeOfDay, pc.FocusArea)

	switch pc.State {
	case "streak_master":
		b.WriteString("Celebrate their amazing streak creatively!")
	case "consistent":
		b.WriteString("Acknowledge their consistency in a unique way!")
	case "building_habit":
		b.WriteString("Encourage their growing study habit uniquely!")
	case "experienced":
		b.WriteString("Challenge them to reach new heights!")
	default:
		b.WriteString("Welcome their study journey with fresh energy!")
	}
	return b.String()
}

// fallbackPool returns the canned templates for the account's streak tier.
func fallbackPool(user *models.User) []string {
	switch {
	case user.Streak >= 7:
		return []string{
			fmt.Sprintf("🔥 %d day streak! Study mastery in progress!", user.Streak),
			fmt.Sprintf("⚡ Level %d achieved! Your consistency is inspiring!", user.Level()),
			fmt.Sprintf("🌟 %d days of dedication! Keep this momentum flowing!", user.Streak),
			fmt.Sprintf("🚀 Streak level: %d! You're building something amazing!", user.Streak),
			fmt.Sprintf("💪 %d-day study warrior! Your persistence pays off!", user.Streak),
		}
	case user.Streak >= 3:
		return []string{
			fmt.Sprintf("📈 %d day streak! Building habits like a pro!", user.Streak),
			fmt.Sprintf("💻 Level %d unlocked! Your progress is real!", user.Level()),
			fmt.Sprintf("🎯 %d days in! You're creating study momentum!", user.Streak),
			fmt.Sprintf("⚡ Progress mode: ON! %d days of consistent effort!", user.Streak),
		}
	default:
		return []string{
			"🌱 Every expert started with level 1! You've got this!",
			fmt.Sprintf("⭐ Level %d initiated! Your learning adventure begins!", user.Level()),
			"💫 Building skills one session at a time!",
			"🎪 Welcome to the study journey! Every day counts!",
			fmt.Sprintf("⚡ %d XP earned! Your foundation is growing!", user.XP),
		}
	}
}

func (m *MotivationService) fallbackMessage(user *models.User) string {
	pool := fallbackPool(user)
	return pool[rand.Intn(len(pool))]
}
