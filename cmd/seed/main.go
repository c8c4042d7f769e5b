package main

import (
	"context"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innsikt/internal/logger"
	"innsikt/internal/model"
	"innsikt/internal/repository"
)

var comments = []string{
	"Innloggingen med BankID feilet to ganger før det fungerte",
	"Siden laster veldig tregt på mobil",
	"Fant ikke skjemaet for å søke om dagpenger",
	"Bra og oversiktlig, takk!",
	"Vanskelig å forstå hva jeg skulle fylle ut i skjemaet",
	"Treg side, og innloggingen tok lang tid",
	"Jeg fikk feilmelding da jeg sendte inn søknaden",
	"Alt fungerte fint",
}

var blockers = []string{
	"Fikk ikke logget inn",
	"Fant ikke riktig skjema",
	"Siden krasjet",
}

var tasks = []model.ChoiceOption{
	{ID: "soke-dagpenger", Label: "Søke dagpenger"},
	{ID: "se-utbetaling", Label: "Se utbetaling"},
	{ID: "endre-kontonummer", Label: "Endre kontonummer"},
	{ID: "sende-melding", Label: "Sende melding"},
}

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), "console")
	log := logger.Logger

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "innsikt"
	}
	team := os.Getenv("SEED_TEAM")
	if team == "" {
		team = "team-nav"
	}
	count := cast.ToInt(os.Getenv("SEED_COUNT"))
	if count <= 0 {
		count = 300
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	repository.EnsureIndexes(ctx, db)

	surveys := seedSurveys(ctx, repository.NewSurveyRepo(db), team)
	seedThemes(ctx, repository.NewThemeRepo(db), team)

	feedbackRepo := repository.NewFeedbackRepo(db)
	rng := rand.New(rand.NewPCG(42, uint64(count)))
	now := time.Now().UTC()
	stored := 0
	for i := 0; i < count; i++ {
		survey := surveys[i%len(surveys)]
		record, err := buildRecord(rng, team, survey, now.Add(-time.Duration(rng.IntN(60*24))*time.Hour))
		if err != nil {
			log.Warn().Err(err).Msg("skipping generated record")
			continue
		}
		if err := feedbackRepo.Create(ctx, record); err != nil {
			log.Fatal().Err(err).Msg("failed to insert feedback")
		}
		stored++
	}

	log.Info().Str("team", team).Int("surveys", len(surveys)).Int("feedback", stored).Msg("seed complete")
}

func seedSurveys(ctx context.Context, repo repository.SurveyRepo, team string) []*model.Survey {
	surveys := []*model.Survey{
		{ID: uuid.NewString(), Team: team, Type: model.SurveyTypeRating, Title: "Hvordan var opplevelsen?", App: "min-side"},
		{ID: uuid.NewString(), Team: team, Type: model.SurveyTypeTopTasks, Title: "Fikk du gjort det du kom for?", App: "min-side"},
		{ID: uuid.NewString(), Team: team, Type: model.SurveyTypeTaskPriority, Title: "Hva er viktigst for deg?"},
		{ID: uuid.NewString(), Team: team, Type: model.SurveyTypeDiscovery, Title: "Hva kom du hit for i dag?", App: "dagpenger"},
	}
	for _, s := range surveys {
		if err := repo.Create(ctx, s); err != nil {
			logger.Logger.Fatal().Err(err).Str("survey", s.Title).Msg("failed to insert survey")
		}
	}
	return surveys
}

func seedThemes(ctx context.Context, repo repository.ThemeRepo, team string) {
	themes := []*model.TextTheme{
		{Name: "Innlogging", Keywords: []string{"bankid", "innlogging", "logget"}, Color: "#3366ff", Priority: 2, AnalysisContext: model.ContextGeneralFeedback},
		{Name: "Ytelse", Keywords: []string{"treg", "tregt", "laster", "krasjet"}, Color: "#ff9900", Priority: 1, AnalysisContext: model.ContextGeneralFeedback},
		{Name: "Skjema", Keywords: []string{"skjema", "søknad", "fylle"}, Color: "#33aa55", AnalysisContext: model.ContextGeneralFeedback},
		{Name: "Innlogging", Keywords: []string{"logget", "innlogging"}, Color: "#3366ff", AnalysisContext: model.ContextBlocker},
		{Name: "Navigasjon", Keywords: []string{"fant", "skjema"}, Color: "#aa33aa", AnalysisContext: model.ContextBlocker},
	}
	for _, t := range themes {
		t.ID = uuid.NewString()
		t.Team = team
		if err := repo.Create(ctx, t); err != nil {
			// the unique (team, name, context) index makes reseeding idempotent
			logger.Logger.Warn().Err(err).Str("theme", t.Name).Msg("theme not inserted")
		}
	}
}

func buildRecord(rng *rand.Rand, team string, survey *model.Survey, at time.Time) (model.FeedbackRecord, error) {
	devices := []model.DeviceType{model.DeviceMobile, model.DeviceDesktop, model.DeviceTablet}
	paths := []string{"/minside", "/dagpenger/soknad", "/utbetalinger", "/kontakt"}

	ctx := model.SubmissionContext{
		DeviceType: devices[rng.IntN(len(devices))],
		Pathname:   paths[rng.IntN(len(paths))],
		Tags:       map[string]string{"rolle": []string{"bruker", "veileder"}[rng.IntN(2)]},
	}

	var answers []model.Answer
	add := func(fieldID string, ft model.FieldType, q model.Question, v model.AnswerValue) error {
		a, err := model.NewAnswer(fieldID, ft, q, v)
		if err != nil {
			return err
		}
		answers = append(answers, a)
		return nil
	}
	comment := func() error {
		return add("feedback", model.FieldTypeText, model.Question{Label: "Fortell oss mer"},
			model.TextValue{Text: comments[rng.IntN(len(comments))]})
	}

	var err error
	switch survey.Type {
	case model.SurveyTypeRating:
		err = add("rating", model.FieldTypeRating, model.Question{Label: "Hvordan var opplevelsen?"},
			model.RatingValue{Score: 1 + rng.IntN(5), Variant: model.VariantEmoji, Scale: 5})
		if err == nil && rng.IntN(2) == 0 {
			err = comment()
		}

	case model.SurveyTypeTopTasks:
		outcomes := []model.ChoiceOption{{ID: "yes", Label: "Ja"}, {ID: "partial", Label: "Delvis"}, {ID: "no", Label: "Nei"}}
		outcome := outcomes[rng.IntN(len(outcomes))]
		err = add(model.FieldTask, model.FieldTypeSingleChoice, model.Question{Label: "Hva kom du for?", Options: tasks},
			model.SingleChoiceValue{OptionID: tasks[rng.IntN(len(tasks))].ID})
		if err == nil {
			err = add(model.FieldSuccess, model.FieldTypeSingleChoice, model.Question{Label: "Fikk du gjort det?", Options: outcomes},
				model.SingleChoiceValue{OptionID: outcome.ID})
		}
		if err == nil && outcome.ID != "yes" {
			err = add(model.FieldBlocker, model.FieldTypeText, model.Question{Label: "Hva stoppet deg?"},
				model.TextValue{Text: blockers[rng.IntN(len(blockers))]})
		}

	case model.SurveyTypeTaskPriority:
		picked := map[string]struct{}{}
		for n := 1 + rng.IntN(3); len(picked) < n; {
			picked[tasks[rng.IntN(len(tasks))].ID] = struct{}{}
		}
		ids := make([]string, 0, len(picked))
		for _, t := range tasks {
			if _, ok := picked[t.ID]; ok {
				ids = append(ids, t.ID)
			}
		}
		err = add(model.FieldPriority, model.FieldTypeMultiChoice, model.Question{Label: "Hva er viktigst?", Options: tasks},
			model.MultiChoiceValue{OptionIDs: ids})

	default:
		err = comment()
	}
	if err != nil {
		return model.FeedbackRecord{}, err
	}

	var app *string
	if survey.App != "" {
		app = &survey.App
	}
	return model.NewFeedbackRecord(uuid.NewString(), team, app, at, survey.ID, survey.Type, ctx, answers)
}
