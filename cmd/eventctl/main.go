// Command eventctl is a small terminal client for the event service.
//
// Usage:
//
//	eventctl [-addr URL] [-redis ADDR] list
//	eventctl [-addr URL] [-redis ADDR] get <id>
//	eventctl [-addr URL] create -title T -short S -detail D -city C -days Monday,Tuesday -cost N -picture URL
//	eventctl [-addr URL] update <id> [-title T] [-short S] [-detail D] [-city C] [-days ...] [-cost N] [-picture URL]
//	eventctl [-addr URL] delete <id>
//	eventctl [-redis ADDR] [-kafka ADDR] watch
//
// With -redis the query cache is shared with other eventctl instances;
// watch consumes the change feed and evicts stale keys from it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"lpt-event/internal/client"
	"lpt-event/internal/kafka"
	"lpt-event/internal/models"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "event service base URL")
	redisAddr := flag.String("redis", "", "Redis address for a shared query cache (optional)")
	kafkaAddr := flag.String("kafka", "localhost:9092", "Kafka broker for the watch command")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: eventctl [flags] list|get|create|update|delete|watch")
		os.Exit(2)
	}

	cache, redisClient := buildCache(*redisAddr)
	if redisClient != nil {
		defer redisClient.Close()
	}
	c := client.New(*addr, cache)
	ctx := context.Background()

	var err error
	switch args[0] {
	case "list":
		err = runList(ctx, c)
	case "get":
		err = runGet(ctx, c, args[1:])
	case "create":
		err = runCreate(ctx, c, args[1:])
	case "update":
		err = runUpdate(ctx, c, args[1:])
	case "delete":
		err = runDelete(ctx, c, args[1:])
	case "watch":
		err = runWatch(ctx, cache, *kafkaAddr)
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "eventctl:", err)
		os.Exit(1)
	}
}

func buildCache(redisAddr string) (client.QueryCache, *redis.Client) {
	if redisAddr == "" {
		return client.NewMemoryCache(), nil
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	return client.NewRedisCache(redisClient), redisClient
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing event id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid event id %q", args[0])
	}
	return id, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runList(ctx context.Context, c *client.Client) error {
	eventList, err := c.ListEvents(ctx)
	if err != nil {
		return err
	}
	return printJSON(eventList)
}

func runGet(ctx context.Context, c *client.Client, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	event, err := c.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(event)
}

func runCreate(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "event title")
	short := fs.String("short", "", "short description")
	detail := fs.String("detail", "", "detailed description")
	city := fs.String("city", "", "city")
	days := fs.String("days", "", "comma-separated weekday names")
	cost := fs.Float64("cost", 0, "cost in USD")
	picture := fs.String("picture", "", "picture URL")
	fs.Parse(args)

	event, err := c.CreateEvent(ctx, models.EventCreate{
		Title:               *title,
		ShortDescription:    *short,
		DetailedDescription: *detail,
		City:                *city,
		DaysOfWeek:          splitDays(*days),
		CostUSD:             *cost,
		PictureURL:          *picture,
	})
	if err != nil {
		return err
	}
	return printJSON(event)
}

func runUpdate(ctx context.Context, c *client.Client, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	title := fs.String("title", "", "event title")
	short := fs.String("short", "", "short description")
	detail := fs.String("detail", "", "detailed description")
	city := fs.String("city", "", "city")
	days := fs.String("days", "", "comma-separated weekday names")
	cost := fs.Float64("cost", 0, "cost in USD")
	picture := fs.String("picture", "", "picture URL")
	fs.Parse(args[1:])

	// Only flags the user actually set become part of the partial update
	var payload models.EventUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			payload.Title = title
		case "short":
			payload.ShortDescription = short
		case "detail":
			payload.DetailedDescription = detail
		case "city":
			payload.City = city
		case "days":
			parsed := splitDays(*days)
			payload.DaysOfWeek = &parsed
		case "cost":
			payload.CostUSD = cost
		case "picture":
			payload.PictureURL = picture
		}
	})

	event, err := c.UpdateEvent(ctx, id, payload)
	if err != nil {
		return err
	}
	return printJSON(event)
}

func runDelete(ctx context.Context, c *client.Client, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	confirmation, err := c.DeleteEvent(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(confirmation.Message)
	return nil
}

func runWatch(ctx context.Context, cache client.QueryCache, kafkaAddr string) error {
	groupID := "eventctl-" + uuid.New().String()
	consumer := kafka.NewChangeConsumer([]string{kafkaAddr}, groupID)
	defer consumer.Close()

	inv := client.NewInvalidator(cache, consumer, nil)
	fmt.Println("Watching event changes, Ctrl-C to stop...")
	consumer.Start(ctx, func(change models.EventChange) {
		inv.Apply(ctx, change)
		fmt.Printf("event %d %s\n", change.EventID, change.Action)
	})
	return nil
}

func splitDays(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			days = append(days, trimmed)
		}
	}
	return days
}
