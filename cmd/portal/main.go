// Command portal is a terminal client for the recruiting platform admin
// dashboard: login, resume search, job openings, notifications, and the help
// assistant.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kapilcyber/bank.ai-sub001/internal/apiclient"
	"github.com/kapilcyber/bank.ai-sub001/internal/assistant"
	"github.com/kapilcyber/bank.ai-sub001/internal/authz"
	"github.com/kapilcyber/bank.ai-sub001/internal/config"
	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
	"github.com/kapilcyber/bank.ai-sub001/internal/logger"
	"github.com/kapilcyber/bank.ai-sub001/internal/notify"
	"github.com/kapilcyber/bank.ai-sub001/internal/session"
	"github.com/kapilcyber/bank.ai-sub001/internal/store"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.Store.Path != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755)
	}
	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer st.Close()

	az, err := authz.NewEngine(ctx, authz.DefaultPolicy)
	if err != nil {
		return fmt.Errorf("init authz: %w", err)
	}

	api := apiclient.NewClient(cfg.API.BaseURL, cfg.APITimeout())
	sessions := session.NewManager(api, st, az)
	chat := assistant.NewManager(api, st)

	scanner := bufio.NewScanner(os.Stdin)

	current, err := sessions.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if current == nil {
		current, err = promptLogin(ctx, sessions, scanner)
		if err != nil {
			return err
		}
	}
	fmt.Printf("Logged in as %s (%s)\n", current.Profile.Name, current.Profile.Role)

	poller := notify.NewPoller(api, notify.Options{
		Interval:   cfg.PollInterval(),
		Debounce:   cfg.UploadDebounce(),
		Limit:      cfg.Notifications.Limit,
		WindowDays: cfg.Notifications.WindowDays,
		OnUpdate: func(s notify.Snapshot) {
			if s.UnreadCount > 0 {
				fmt.Printf("\n[%d unread notifications, /notify to list]\n> ", s.UnreadCount)
			}
		},
	})
	poller.Start(ctx)
	defer poller.Stop()

	fmt.Println("\nType a message for the assistant, or a /command.")
	fmt.Println("Commands: /new /history /open <id> /notify /jobs /search <skill,...> /stats /outlook /logout /quit")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if !strings.HasPrefix(input, "/") {
			sendChat(ctx, chat, input)
			continue
		}

		cmd, arg, _ := strings.Cut(input[1:], " ")
		switch cmd {
		case "quit":
			fmt.Println("Bye!")
			return nil
		case "logout":
			if err := sessions.Logout(ctx); err != nil {
				fmt.Println("logout:", err)
			}
			fmt.Println("Logged out.")
			return nil
		case "new":
			if err := chat.StartNewChat(ctx); err != nil {
				fmt.Println("new chat:", err)
				continue
			}
			fmt.Println("Started a new chat.")
		case "history":
			printHistory(ctx, chat)
		case "open":
			openChat(ctx, chat, strings.TrimSpace(arg))
		case "notify":
			printNotifications(poller)
		case "jobs":
			printJobs(ctx, api)
		case "search":
			searchResumes(ctx, api, arg)
		case "stats":
			printStats(ctx, api)
		case "outlook":
			if err := api.TriggerOutlookSync(ctx); err != nil {
				fmt.Println("outlook sync:", err)
				continue
			}
			poller.NotifyResumeUploaded()
			fmt.Println("Outlook sync triggered.")
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func promptLogin(ctx context.Context, sessions *session.Manager, scanner *bufio.Scanner) (*domain.Session, error) {
	for {
		fmt.Print("Email: ")
		if !scanner.Scan() {
			return nil, fmt.Errorf("stdin closed")
		}
		email := strings.TrimSpace(scanner.Text())

		fmt.Print("Password: ")
		if !scanner.Scan() {
			return nil, fmt.Errorf("stdin closed")
		}
		password := scanner.Text()

		sess, err := sessions.Login(ctx, email, password)
		if err != nil {
			fmt.Println("Login failed:", err)
			continue
		}
		return sess, nil
	}
}

func sendChat(ctx context.Context, chat *assistant.Manager, text string) {
	reply, err := chat.Send(ctx, text)
	if err != nil {
		fmt.Println("assistant:", err)
		return
	}
	fmt.Println(reply)
}

func printHistory(ctx context.Context, chat *assistant.Manager) {
	sessions, err := chat.History(ctx)
	if err != nil {
		fmt.Println("history:", err)
		return
	}
	if len(sessions) == 0 {
		fmt.Println("No past chats.")
		return
	}
	for _, s := range sessions {
		fmt.Printf("%s  %s  (%d messages)\n", s.ID, s.Title, len(s.Messages))
	}
}

func openChat(ctx context.Context, chat *assistant.Manager, id string) {
	if id == "" {
		fmt.Println("usage: /open <id>")
		return
	}
	session, err := chat.OpenPastChat(ctx, id)
	if err != nil {
		fmt.Println("open:", err)
		return
	}
	fmt.Printf("-- %s --\n", session.Title)
	for _, m := range session.Messages {
		prefix := "you"
		if m.Role == domain.MessageRoleBot {
			prefix = "bot"
		}
		fmt.Printf("[%s] %s\n", prefix, m.Text)
	}
}

func printNotifications(poller *notify.Poller) {
	snap := poller.Snapshot()
	if len(snap.Items) == 0 {
		fmt.Println("No notifications.")
		return
	}
	for _, item := range snap.Items {
		fmt.Printf("[%s] %s\n", item.Type.Label(), item.Message)
	}
	fmt.Printf("%d unread\n", snap.UnreadCount)
}

func printJobs(ctx context.Context, api *apiclient.Client) {
	jobs, err := api.Jobs(ctx)
	if err != nil {
		fmt.Println("jobs:", err)
		return
	}
	domain.SortJobsByPostedDesc(jobs)
	for _, j := range jobs {
		fmt.Printf("%s  %-30s  %s  %s\n", j.ID, j.Title, j.Status, j.PostedAt.Format("2006-01-02"))
	}
}

func searchResumes(ctx context.Context, api *apiclient.Client, arg string) {
	var filters domain.SearchFilters
	for _, s := range strings.Split(arg, ",") {
		if s = strings.TrimSpace(s); s != "" {
			filters.Skills = append(filters.Skills, s)
		}
	}
	resumes, err := api.SearchResumes(ctx, filters)
	if err != nil {
		fmt.Println("search:", err)
		return
	}
	domain.SortResumesByUploadDesc(resumes)
	for _, r := range resumes {
		fmt.Printf("%s  %-25s  %.1fy  %s\n", r.ID, r.Name, r.Experience, strings.Join(r.Skills, ", "))
	}
	fmt.Printf("%d results\n", len(resumes))
}

func printStats(ctx context.Context, api *apiclient.Client) {
	stats, err := api.DashboardStats(ctx, "")
	if err != nil {
		fmt.Println("stats:", err)
		return
	}
	fmt.Printf("users=%d resumes=%d jobs=%d matches=%d\n",
		stats.TotalUsers, stats.TotalResumes, stats.TotalJobs, stats.TotalMatches)
}
