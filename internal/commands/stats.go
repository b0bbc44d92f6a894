package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

var botStartTime = time.Now()

// handleStats shows host and runtime statistics.
func handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	// Defer; gathering CPU usage blocks for a second.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	hostField := "unavailable"
	if info, err := host.Info(); err == nil {
		hostField = fmt.Sprintf("**Hostname:** `%s`\n**OS:** `%s %s`\n**Uptime:** `%s`",
			info.Hostname, info.Platform, info.KernelArch,
			formatDuration(time.Duration(info.Uptime)*time.Second))
	}

	cpuField := "unavailable"
	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		cpuField = fmt.Sprintf("**Usage:** `%.1f%%`\n**Threads:** `%d`", percents[0], runtime.NumCPU())
	}

	memField := "unavailable"
	if vm, err := mem.VirtualMemory(); err == nil {
		memField = fmt.Sprintf("**Used:** `%s / %s` (%.1f%%)",
			formatBytes(vm.Used), formatBytes(vm.Total), vm.UsedPercent)
	}

	diskField := "unavailable"
	if usage, err := disk.Usage("/"); err == nil {
		diskField = fmt.Sprintf("**Used:** `%s / %s` (%.1f%%)",
			formatBytes(usage.Used), formatBytes(usage.Total), usage.UsedPercent)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	runtimeField := fmt.Sprintf("**Version:** `%s`\n**Goroutines:** `%d`\n**Heap:** `%s`\n**GC cycles:** `%d`",
		runtime.Version(), runtime.NumGoroutine(), formatBytes(m.Alloc), m.NumGC)

	botField := fmt.Sprintf("**Uptime:** `%s`\n**Guilds:** `%d`\n**Latency:** `%dms`",
		formatDuration(time.Since(botStartTime)), len(s.State.Guilds),
		s.HeartbeatLatency().Milliseconds())

	embed := &discordgo.MessageEmbed{
		Title: "📊 System statistics",
		Color: 0x00BFFF,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🖥️ Host", Value: hostField, Inline: false},
			{Name: "⚡ CPU", Value: cpuField, Inline: true},
			{Name: "💾 Memory", Value: memField, Inline: true},
			{Name: "📀 Disk", Value: diskField, Inline: true},
			{Name: "🤖 Bot", Value: botField, Inline: true},
			{Name: "🔷 Go runtime", Value: runtimeField, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
