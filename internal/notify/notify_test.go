package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsnclaws/intake-api/internal/tenant"
)

var austin = tenant.NewRegistry(nil, "austin").Default()

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt; &amp; &#039;q&#039;",
		Escape(`<script>alert("x")</script> & 'q'`))
	assert.Equal(t, "line one<br>line &lt;two&gt;", EscapeMultiline("line one\nline <two>"))
}

func TestRenderer_EscapesEveryBinding(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	msg, err := r.Render(austin, Notice{
		Template: TemplateContactNotification,
		To:       "ops@example.org",
		ReplyTo:  "a@b.com",
		Subject:  "[Contact] general - from A\r\nBcc: evil@example.com",
		Data: map[string]any{
			"name":    `<script>alert("pwned")</script>`,
			"email":   "a@b.com",
			"reason":  "general",
			"message": "hi\nthere \"friend\"",
		},
		Multiline: []string{"message"},
	})
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;alert(&quot;pwned&quot;)&lt;/script&gt;")
	assert.Contains(t, msg.HTML, "hi<br>there &quot;friend&quot;")
	assert.Contains(t, msg.HTML, "<h1>PawsNClaws ATX</h1>")
	assert.Contains(t, msg.HTML, "Keeping Pets &amp; People Together")
	assert.Equal(t, "[Contact] general - from A  Bcc: evil@example.com", msg.Subject)
	assert.Equal(t, "a@b.com", msg.ReplyTo)
}

func TestRenderer_NestedBindings(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	msg, err := r.Render(austin, Notice{
		Template: TemplateSubmissionSummary,
		To:       "ops@example.org",
		Data: map[string]any{
			"title":  "New Volunteer <b>",
			"fields": []map[string]any{Field("Roles", []string{"<i>events</i>"}), Field("Count", int64(3))},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "New Volunteer &lt;b&gt;")
	assert.Contains(t, msg.HTML, "&lt;i&gt;events&lt;/i&gt;")
	assert.Contains(t, msg.HTML, "<strong>Count:</strong> 3")
	assert.NotContains(t, msg.HTML, "<i>")
}

func TestRenderer_AllTemplatesRender(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	for name := range bodyTemplates {
		_, err := r.Render(austin, Notice{Template: name, To: "x@example.org", Data: map[string]any{}})
		assert.NoError(t, err, name)
	}
	_, err = r.Render(austin, Notice{Template: "missing"})
	assert.Error(t, err)
}

func TestDispatcher_StopsAtFirstFailure(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	sender := &recordingSender{err: errors.New("provider down")}
	d := NewDispatcher(r, sender)

	err = d.Notify(context.Background(), austin,
		Notice{Template: TemplateContactConfirmation, To: "a@b.com", Data: map[string]any{"name": "A"}},
		Notice{Template: TemplateContactConfirmation, To: "c@d.com", Data: map[string]any{"name": "C"}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
}

func TestDispatcher_SkipsNoticesWithoutRecipient(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	sender := &recordingSender{}
	d := NewDispatcher(r, sender)

	require.NoError(t, d.Notify(context.Background(), austin,
		Notice{Template: TemplateNewsletterWelcome, To: ""},
		Notice{Template: TemplateNewsletterWelcome, To: "a@b.com", Subject: "Welcome", Data: map[string]any{"email": "a@b.com"}},
	))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@b.com", sender.sent[0].To)
}

func TestSESSender_BuildsInput(t *testing.T) {
	fake := &fakeSES{}
	s := NewSESSenderWithClient(fake, "PawsNClaws ATX <noreply@pawsnclaws.org>", "intake")

	err := s.Send(context.Background(), Message{To: "a@b.com", Subject: "Hi", HTML: "<p>x</p>", ReplyTo: "r@b.com"})
	require.NoError(t, err)

	in := fake.input
	require.NotNil(t, in)
	assert.Equal(t, "PawsNClaws ATX <noreply@pawsnclaws.org>", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"a@b.com"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"r@b.com"}, in.ReplyToAddresses)
	assert.Equal(t, "<p>x</p>", aws.ToString(in.Content.Simple.Body.Html.Data))
	assert.Equal(t, "intake", aws.ToString(in.ConfigurationSetName))
}

func TestSESSender_WrapsError(t *testing.T) {
	s := NewSESSenderWithClient(&fakeSES{err: errors.New("throttled")}, "x@y.z", "")
	err := s.Send(context.Background(), Message{To: "a@b.com"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "ses send:"))
}
