package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"
)

// Format a job application for Telegram
func FormatJob(job *models.JobApplication) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(job.Position)))
	sb.WriteString(fmt.Sprintf("🏢 *Company:* %s\n", EscapeMarkdown(job.Company)))

	sb.WriteString(fmt.Sprintf("📊 *Status:* %s\n", EscapeMarkdown(StatusDisplayName(job.Status))))

	if job.JobLocation != "" {
		sb.WriteString(fmt.Sprintf("📍 *Location:* %s\n", EscapeMarkdown(job.JobLocation)))
	}

	if job.JobType != "" {
		sb.WriteString(fmt.Sprintf("📋 *Type:* %s\n", EscapeMarkdown(job.JobType)))
	}

	if job.Salary.Min > 0 || job.Salary.Max > 0 {
		salaryStr := EscapeMarkdown(FormatSalary(&job.Salary))
		sb.WriteString(fmt.Sprintf("💰 *Salary:* %s\n", salaryStr))
	}

	if job.Priority != "" {
		sb.WriteString(fmt.Sprintf("⚡ *Priority:* %s\n", EscapeMarkdown(string(job.Priority))))
	}

	if !job.ApplicationDate.IsZero() {
		appliedDate := job.ApplicationDate.Format("02.01.2006")
		sb.WriteString(fmt.Sprintf("📅 *Applied:* %s\n", EscapeMarkdown(appliedDate)))
	}

	if len(job.InterviewHistory) > 0 {
		sb.WriteString(fmt.Sprintf("🗓 *Interviews:* %d\n", len(job.InterviewHistory)))
	}

	if job.Favorite {
		sb.WriteString("⭐ *Favorite*\n")
	}

	if job.JobURL != "" {
		sb.WriteString(fmt.Sprintf("\n🔗 [Open posting](%s)", job.JobURL))
	}

	return sb.String()
}

func FormatSalary(salary *models.SalaryRange) string {
	currency := salary.Currency
	switch currency {
	case "USD":
		currency = "$"
	case "EUR":
		currency = "€"
	case "INR":
		currency = "₹"
	}

	if salary.Min > 0 && salary.Max > 0 {
		return fmt.Sprintf("%d - %d %s", salary.Min, salary.Max, currency)
	} else if salary.Min > 0 {
		return fmt.Sprintf("from %d %s", salary.Min, currency)
	} else if salary.Max > 0 {
		return fmt.Sprintf("up to %d %s", salary.Max, currency)
	}

	return "not specified"
}

func FormatJobList(jobs []models.JobApplication, total int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📋 *Applications:* %d\n", total))
	sb.WriteString(fmt.Sprintf("*Showing:* %d\n\n", len(jobs)))

	for i, job := range jobs {
		sb.WriteString(fmt.Sprintf("*%d\\. %s*\n", i+1, EscapeMarkdown(job.Position)))
		sb.WriteString(fmt.Sprintf("   🏢 %s\n", EscapeMarkdown(job.Company)))
		sb.WriteString(fmt.Sprintf("   📊 %s\n", EscapeMarkdown(StatusDisplayName(job.Status))))

		if job.Favorite {
			sb.WriteString("   ⭐ favorite\n")
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// Format a task for Telegram
func FormatTask(task *models.Task) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(task.Title)))

	sb.WriteString(fmt.Sprintf("📊 *Status:* %s\n", EscapeMarkdown(string(task.Status))))

	if task.Category != "" {
		sb.WriteString(fmt.Sprintf("🏷 *Category:* %s\n", EscapeMarkdown(string(task.Category))))
	}

	if task.Priority != "" {
		sb.WriteString(fmt.Sprintf("⚡ *Priority:* %s\n", EscapeMarkdown(string(task.Priority))))
	}

	if !task.DueDate.IsZero() {
		dueDate := task.DueDate.Format("02.01.2006 15:04")
		sb.WriteString(fmt.Sprintf("⏰ *Due:* %s\n", EscapeMarkdown(dueDate)))
	}

	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", EscapeMarkdown(TruncateString(task.Description, 200))))
	}

	return sb.String()
}

func FormatTaskList(tasks []models.Task, total int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("✅ *Tasks:* %d\n", total))
	sb.WriteString(fmt.Sprintf("*Showing:* %d\n\n", len(tasks)))

	for i, task := range tasks {
		marker := "▫️"
		if task.Status == models.TaskStatusCompleted {
			marker = "✅"
		}

		sb.WriteString(fmt.Sprintf("*%d\\.* %s %s\n", i+1, marker, EscapeMarkdown(task.Title)))

		if !task.DueDate.IsZero() {
			sb.WriteString(fmt.Sprintf("   ⏰ %s\n", EscapeMarkdown(task.DueDate.Format("02.01.2006"))))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// Format a contact for Telegram
func FormatContact(contact *models.Contact) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(contact.Name)))

	if contact.Company != "" {
		sb.WriteString(fmt.Sprintf("🏢 *Company:* %s\n", EscapeMarkdown(contact.Company)))
	}

	if contact.Position != "" {
		sb.WriteString(fmt.Sprintf("💼 *Position:* %s\n", EscapeMarkdown(contact.Position)))
	}

	if contact.Email != "" {
		sb.WriteString(fmt.Sprintf("📧 *Email:* %s\n", EscapeMarkdown(contact.Email)))
	}

	if contact.Phone != "" {
		sb.WriteString(fmt.Sprintf("📞 *Phone:* %s\n", EscapeMarkdown(contact.Phone)))
	}

	if contact.Relationship != "" {
		sb.WriteString(fmt.Sprintf("🤝 *Relationship:* %s\n", EscapeMarkdown(string(contact.Relationship))))
	}

	if len(contact.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("🏷 *Tags:* %s\n", EscapeMarkdown(strings.Join(contact.Tags, ", "))))
	}

	if len(contact.Interactions) > 0 {
		sb.WriteString(fmt.Sprintf("💬 *Interactions:* %d\n", len(contact.Interactions)))
	}

	if contact.Favorite {
		sb.WriteString("⭐ *Favorite*\n")
	}

	return sb.String()
}

func FormatContactList(contacts []models.Contact, total int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("👥 *Contacts:* %d\n", total))
	sb.WriteString(fmt.Sprintf("*Showing:* %d\n\n", len(contacts)))

	for i, contact := range contacts {
		sb.WriteString(fmt.Sprintf("*%d\\. %s*\n", i+1, EscapeMarkdown(contact.Name)))

		if contact.Company != "" {
			sb.WriteString(fmt.Sprintf("   🏢 %s\n", EscapeMarkdown(contact.Company)))
		}

		if contact.Email != "" {
			sb.WriteString(fmt.Sprintf("   📧 %s\n", EscapeMarkdown(contact.Email)))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// Format the current plan for Telegram
func FormatPlan(plan models.PlanState) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("💳 *Current plan:* %s\n\n", EscapeMarkdown(plan.Plan.Name)))

	sb.WriteString("*Limits:*\n")
	sb.WriteString(fmt.Sprintf("• Applications: %s\n", formatLimit(plan.Plan.Limits.JobApplications)))
	sb.WriteString(fmt.Sprintf("• Contacts: %s\n", formatLimit(plan.Plan.Limits.Contacts)))
	sb.WriteString(fmt.Sprintf("• Storage: %s\n", formatStorageLimit(plan.Plan.Limits.DocumentStorage)))

	if plan.Subscription != nil {
		sb.WriteString(fmt.Sprintf("\n*Subscription:* %s\n", EscapeMarkdown(plan.Subscription.Status)))
		if !plan.Subscription.EndDate.IsZero() {
			sb.WriteString(fmt.Sprintf("*Renews:* %s\n", EscapeMarkdown(plan.Subscription.EndDate.Format("02.01.2006"))))
		}
	}

	return sb.String()
}

func formatLimit(limit *int) string {
	if limit == nil {
		return "default"
	}
	if *limit == models.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", *limit)
}

func formatStorageLimit(limit *int) string {
	if limit == nil {
		return "default"
	}
	if *limit == models.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d MB", *limit)
}

// Format dashboard stats for Telegram
// FormatLocalCounts renders the snapshot counts shown when the dashboard
// cannot be fetched.
func FormatLocalCounts(counts map[string]int) string {
	var sb strings.Builder

	sb.WriteString("📊 *Dashboard* \\(offline\\)\n\n")
	sb.WriteString("⚠️ Could not reach the server\\. Showing locally saved counts:\n\n")

	sb.WriteString(fmt.Sprintf("📋 *Applications:* %d\n", counts[models.SnapshotEntityJob]))
	sb.WriteString(fmt.Sprintf("✅ *Tasks:* %d\n", counts[models.SnapshotEntityTask]))
	sb.WriteString(fmt.Sprintf("👥 *Contacts:* %d\n", counts[models.SnapshotEntityContact]))

	return sb.String()
}

func FormatStats(stats *models.DashboardStats) string {
	var sb strings.Builder

	sb.WriteString("📊 *Dashboard*\n\n")

	sb.WriteString(fmt.Sprintf("📋 *Applications:* %d\n", stats.TotalJobs))
	sb.WriteString(fmt.Sprintf("✅ *Tasks:* %d\n", stats.TotalTasks))
	sb.WriteString(fmt.Sprintf("👥 *Contacts:* %d\n\n", stats.TotalContacts))

	if len(stats.JobsByStatus) > 0 {
		sb.WriteString("*By status:*\n")
		for _, status := range models.JobStatuses() {
			if count, ok := stats.JobsByStatus[status]; ok && count > 0 {
				sb.WriteString(fmt.Sprintf("• %s: %d\n", EscapeMarkdown(StatusDisplayName(status)), count))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("🗓 *Interview rate:* %s\n", EscapeMarkdown(fmt.Sprintf("%.1f%%", stats.InterviewRate))))
	sb.WriteString(fmt.Sprintf("🎉 *Offer rate:* %s\n", EscapeMarkdown(fmt.Sprintf("%.1f%%", stats.OfferRate))))

	if len(stats.UpcomingInterviews) > 0 {
		sb.WriteString("\n*Upcoming interviews:*\n")
		for _, interview := range stats.UpcomingInterviews {
			sb.WriteString(fmt.Sprintf("• %s at %s \\- %s\n",
				EscapeMarkdown(interview.Position),
				EscapeMarkdown(interview.Company),
				EscapeMarkdown(interview.Date.Format("02.01.2006 15:04")),
			))
		}
	}

	return sb.String()
}

func FormatTaskReminder(task *models.Task) string {
	var sb strings.Builder

	sb.WriteString("⏰ *Task due soon*\n\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(task.Title)))

	if !task.DueDate.IsZero() {
		due := task.DueDate.Format("02.01.2006 15:04")
		sb.WriteString(fmt.Sprintf("⏰ *Due:* %s\n", EscapeMarkdown(due)))

		remaining := time.Until(task.DueDate)
		if remaining > 0 {
			sb.WriteString(fmt.Sprintf("⌛ *In:* %s\n", EscapeMarkdown(formatDuration(remaining))))
		}
	}

	return sb.String()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func StatusDisplayName(status models.JobStatus) string {
	switch status {
	case models.JobStatusApplied:
		return "Applied"
	case models.JobStatusScreening:
		return "Screening"
	case models.JobStatusInterview:
		return "Interview"
	case models.JobStatusOffer:
		return "Offer"
	case models.JobStatusRejected:
		return "Rejected"
	case models.JobStatusWithdrawn:
		return "Withdrawn"
	case models.JobStatusSaved:
		return "Saved"
	default:
		return string(status)
	}
}

func FormatWelcomeMessage(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(`👋 Hi, *%s*\!

I help you track your job hunt\.

*What I can do:*
• Track job applications and their status
• Manage tasks with due date reminders
• Keep your networking contacts in one place
• Show your progress on a dashboard

*Commands:*
/jobs \- your applications
/tasks \- your tasks
/contacts \- your contacts
/stats \- dashboard
/plan \- your plan
/help \- help

Start by adding your first application \- /jobs`, EscapeMarkdown(name))
}

func FormatHelpMessage() string {
	return `*📖 Help*

*Commands:*

/start \- start working with the bot
/jobs \- list and add job applications
/tasks \- list and add tasks
/contacts \- list and add contacts
/stats \- dashboard statistics
/plan \- current plan and limits
/help \- this help

*How it works:*

1️⃣ Add applications with /jobs
   \- Company, position, status

2️⃣ Add follow\-up tasks with /tasks
   \- I will remind you before the due date

3️⃣ Keep recruiters and referrals in /contacts

4️⃣ Watch your progress in /stats`
}

func FormatNoJobsMessage() string {
	return `😔 *No applications yet*

Add your first one with the ➕ Add application button\.`
}

func FormatNoTasksMessage() string {
	return `😔 *No tasks yet*

Add one with the ➕ Add task button\.`
}

func FormatNoContactsMessage() string {
	return `😔 *No contacts yet*

Add one with the ➕ Add contact button\.`
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
