package service

import (
	"debate_hub/internal/mailer"
	"debate_hub/internal/repository"
)

type Services struct {
	User       *UserService
	Admin      *AdminService
	Topic      *TopicService
	Debate     *DebateService
	Automation *AutomationService
	Feed       *EventFeed
}

func NewServices(repos *repository.Repositories, notifier mailer.Notifier) *Services {
	feed := NewEventFeed()

	userService := NewUserService(repos.User)
	adminService := NewAdminService(repos.Admin, repos.User, repos.Debate)
	topicService := NewTopicService(repos.Topic)
	debateService := NewDebateService(repos.Debate, repos.Topic, repos.User, notifier, feed)
	automationService := NewAutomationService(repos.Debate, debateService, feed)

	return &Services{
		User:       userService,
		Admin:      adminService,
		Topic:      topicService,
		Debate:     debateService,
		Automation: automationService,
		Feed:       feed,
	}
}
