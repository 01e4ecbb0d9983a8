package command

import (
	"fmt"
	"strconv"
	"time"

	"blacklist/internal/bot"
	"blacklist/internal/report"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

type UserInfoCommand struct{}

func (c *UserInfoCommand) Name() string        { return "uinfo" }
func (c *UserInfoCommand) Description() string { return "Looks up a user's ban status and reports" }
func (c *UserInfoCommand) Aliases() []string   { return []string{"userinfo"} }

func (c *UserInfoCommand) Run(ctx interface{}) error {
	mc, ok := ctx.(*MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	member, err := memberFromArg(mc)
	if err != nil {
		bot.Error(mc.Session, mc.Event.ChannelID, mc.Event.Author, "couldn't find that member.")
		return nil
	}
	user := member.User

	age, banned, err := mc.Reputation.Lookup(mc.Ctx, user.ID)
	if err != nil {
		return fmt.Errorf("reputation lookup failed: %w", err)
	}
	reports := mc.Storage.ReportsFor(user.ID)

	created, err := discordgo.SnowflakeTimestamp(user.ID)
	if err != nil {
		return fmt.Errorf("failed to read account timestamp: %w", err)
	}

	joinedText := ""
	if !member.JoinedAt.IsZero() {
		joinedText = fmt.Sprintf(" They joined the server **%s**, on **%s**.",
			humanize.Time(member.JoinedAt), member.JoinedAt.Format("2 January 2006"))
	}
	bannedText := "not globally banned"
	if banned {
		bannedText = "globally banned"
	}
	checkedText := "just now"
	if age > 0 {
		checkedText = humanize.Time(time.Now().Add(-age))
	}
	reportsText := "any"
	if len(reports) > 0 {
		reportsText = strconv.Itoa(len(reports))
	}
	haveText := "do not have"
	if len(reports) > 0 {
		haveText = "have"
	}

	bot.MessageEmbed(mc.Session, mc.Event.ChannelID, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Lookup for %s", user.Username),
		Color: report.ColorInfo,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: user.AvatarURL(""),
		},
		Description: fmt.Sprintf(
			"%s's account was created **%s**, on **%s**.%s They are **%s**, last checked **%s**. "+
				"They %s **%s** reports.",
			user.Mention(), humanize.Time(created), created.Format("2 January 2006"), joinedText,
			bannedText, checkedText, haveText, reportsText,
		),
	})
	return nil
}

func init() {
	Register(ApplyMiddlewares(&UserInfoCommand{}, WithGuildOnly()))
}
