package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-trend/background"
	"github.com/bitmark-inc/autonomy-trend/consts"
	"github.com/bitmark-inc/autonomy-trend/schema"
	"github.com/bitmark-inc/autonomy-trend/store"
	"github.com/bitmark-inc/autonomy-trend/trend"
	"github.com/bitmark-inc/autonomy-trend/utils"
)

const (
	defaultSummaryMetric = "DeathsPer100kSmoothed7"
	defaultSummarySize   = 10
)

var (
	mongoClient *mongo.Client
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	bindEnv(viper.GetViper())

	viper.SetDefault("trend.summary.metric", defaultSummaryMetric)
	viper.SetDefault("trend.summary.size", defaultSummarySize)
}

func fail(err error, msg string) {
	sentry.CaptureException(err)
	sentry.Flush(5 * time.Second)
	log.WithFields(log.Fields{"prefix": "trend", "error": err}).Error(msg)

	if mongoClient != nil {
		_ = mongoClient.Disconnect(context.Background())
	}
	os.Exit(1)
}

// logSummary logs the leading countries of a run on its latest date, then
// the rows of the query view.
func logSummary(s store.TrendStore, query trend.Query, report *background.Report) {
	metric := viper.GetString("trend.summary.metric")

	rows, err := s.GetTrend(report.RunID, "")
	if nil != err {
		log.WithFields(log.Fields{"prefix": "summary", "error": err}).Warn("read back trend")
		return
	}

	countries, err := trend.TopCountries(rows, metric, viper.GetInt("trend.summary.size"))
	if nil != err {
		log.WithFields(log.Fields{"prefix": "summary", "error": err}).Warn("rank countries")
		return
	}
	log.WithFields(log.Fields{
		"prefix":    "summary",
		"metric":    metric,
		"date":      report.LatestDate.Format(dateLayout),
		"countries": countries,
		"history":   len(trend.FilterCountries(rows, countries)),
	}).Info("top countries")

	if query.Rank == nil {
		log.WithFields(log.Fields{"prefix": "summary", "rows": len(report.View)}).Info("view")
		return
	}

	_, value, _ := schema.LookupMetric(query.Rank.Metric)
	for i, r := range report.View {
		log.WithFields(log.Fields{
			"prefix":  "summary",
			"rank":    i + 1,
			"country": r.Country,
			"date":    r.Date.Format(dateLayout),
			"metric":  query.Rank.Metric,
			"value":   value(r),
		}).Info("view")
	}
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Job is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if mongoClient != nil {
			log.Info("Shutting down mongo store")
			_ = mongoClient.Disconnect(ctx)
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	if file := viper.GetString("source.aliases"); file != "" {
		count, err := consts.LoadCountryAliases(file)
		if nil != err {
			log.Panic(err)
		}
		log.WithField("prefix", "init").Infof("Loaded %d country aliases", count)
	}

	query, err := queryFromConfig(viper.GetViper())
	if nil != err {
		fail(err, "invalid trend query")
	}

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err = mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(initialCtx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	mStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
	if err := mStore.Ping(); nil != err {
		fail(err, "ping mongo database")
	}

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "trend",
		Tags:     map[string]string{"env": viper.GetString("sentry.environment")},
		Reporter: background.NewLogReporter(),
	}, time.Minute)

	job := background.NewTrendJob(mStore, trend.Engine{
		Workers:   viper.GetInt("trend.workers"),
		Normalize: utils.NormalizeCountry,
	}, query, scope)

	report, err := job.Run()
	_ = closer.Close()
	if nil != err {
		fail(err, "derive trend")
	}

	logSummary(mStore, query, report)

	mStore.Close()
}
