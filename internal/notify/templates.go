package notify

// Template names.
const (
	TemplateContactNotification = "contact_notification"
	TemplateContactConfirmation = "contact_confirmation"
	TemplateNewsletterWelcome   = "newsletter_welcome"
	TemplateColonySubmission    = "colony_submission"
	TemplateEventConfirmation   = "event_confirmation"
	TemplateVolunteerWelcome    = "volunteer_welcome"
	TemplateFosterWelcome       = "foster_welcome"
	TemplateSponsorConfirmation = "sponsor_confirmation"
	TemplateVetFundConfirmation = "vet_fund_confirmation"
	TemplateDepositConfirmation = "deposit_confirmation"
	TemplateSurrenderResources  = "surrender_resources"
	TemplateLostPetAlert        = "lost_pet_alert"
	TemplateSubmissionSummary   = "submission_summary"
	TemplateDonationReceipt     = "donation_receipt"
)

const envelopeTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #f59e0b, #d97706); padding: 30px; text-align: center; border-radius: 12px 12px 0 0; }
    .header h1 { color: white; margin: 0; font-size: 24px; }
    .content { background: #fff; padding: 30px; border: 1px solid #e5e7eb; }
    .footer { background: #f3f4f6; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 12px 12px; }
    .button { display: inline-block; background: #f59e0b; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; font-weight: 600; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>{{ tenant.name }}</h1></div>
    <div class="content">
{{ content }}
    </div>
    <div class="footer">
      <p>{{ tenant.name }} - Keeping Pets &amp; People Together</p>
      <p>{{ tenant.city }}, {{ tenant.state }} | <a href="{{ tenant.site_url }}">{{ tenant.site_url }}</a></p>
    </div>
  </div>
</body>
</html>
`

var bodyTemplates = map[string]string{
	TemplateContactNotification: `<h2>New Contact Form Submission</h2>
<p><strong>From:</strong> {{ name }} ({{ email }})</p>
<p><strong>Subject:</strong> {{ reason }}</p>
<p><strong>Message:</strong></p>
<div style="background: #f9fafb; padding: 15px; border-radius: 8px; margin: 15px 0;">{{ message }}</div>
<a href="mailto:{{ email }}" class="button">Reply to {{ name }}</a>`,

	TemplateContactConfirmation: `<h2>Thanks for reaching out, {{ name }}!</h2>
<p>We've received your message and will get back to you within 24-48 hours.</p>
<p>In the meantime, check out our <a href="{{ tenant.site_url }}/resources">resources</a> for helpful information.</p>
<p>Best,<br>The PawsNClaws Team</p>`,

	TemplateNewsletterWelcome: `<h2>You're In!</h2>
<p>Thanks for subscribing to the {{ tenant.name }} newsletter.</p>
<p>You'll receive:</p>
<ul>
  <li>Monthly updates on our impact</li>
  <li>Heartwarming success stories</li>
  <li>Upcoming events and volunteer opportunities</li>
  <li>Ways to help {{ tenant.city }}'s animals</li>
</ul>
<p style="font-size: 12px; color: #6b7280;">Subscribed: {{ email }}<br><a href="{{ tenant.site_url }}/unsubscribe">Unsubscribe</a></p>`,

	TemplateColonySubmission: `<h2>New Colony Submission</h2>
<p><strong>Colony Name:</strong> {{ colony_name }}</p>
<p><strong>Location:</strong> {{ location }}</p>
{% if address %}<p><strong>Address:</strong> {{ address }}</p>{% endif %}
<p><strong>Estimated Cats:</strong> {{ estimated_cats }}</p>
{% if tnr_status %}<p><strong>TNR Status:</strong> {{ tnr_status }}</p>{% endif %}
<p><strong>Submitted by:</strong> {{ submitter_name }} ({{ submitter_email }}){% if submitter_relation %}, {{ submitter_relation }}{% endif %}</p>
{% if urgent_needs %}<div style="background: #fef2f2; border: 1px solid #fecaca; padding: 15px; border-radius: 8px; margin: 15px 0;">
  <p style="color: #dc2626; font-weight: bold; margin: 0 0 10px 0;">Urgent Needs:</p>
  <p style="margin: 0;">{{ urgent_needs }}</p>
</div>{% endif %}
<a href="{{ tenant.site_url }}/admin/colonies" class="button">Review in Admin</a>`,

	TemplateEventConfirmation: `<h2>You're Signed Up!</h2>
<p>Hi {{ name }},</p>
<p>You're registered for:</p>
<div style="background: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <h3 style="margin-top: 0; color: #f59e0b;">{{ event_title }}</h3>
  {% if event_date %}<p style="margin-bottom: 0;"><strong>Date:</strong> {{ event_date }}</p>{% endif %}
</div>
<h3>What to Expect:</h3>
<ul>
  <li>We'll send a reminder email 24 hours before the event</li>
  <li>Arrive 10-15 minutes early to check in</li>
  <li>Bring your enthusiasm and questions!</li>
</ul>
<p>Need to cancel? Just reply to this email or contact us through our <a href="{{ tenant.site_url }}/contact">contact form</a>.</p>
<a href="{{ tenant.site_url }}/events" class="button">View All Events</a>`,

	TemplateVolunteerWelcome: `<h2>Welcome to the Pack, {{ name }}!</h2>
<p>Thank you for signing up to volunteer with {{ tenant.name }}. We're thrilled to have you join our mission!</p>
<p><strong>You signed up for:</strong></p>
<ul>{% for role in roles %}<li>{{ role }}</li>{% endfor %}</ul>
<p>A volunteer coordinator will reach out within the next few days to discuss next steps and answer any questions.</p>
<a href="{{ tenant.site_url }}/events" class="button">View Upcoming Events</a>`,

	TemplateFosterWelcome: `<h2>Thank You for Applying to Foster, {{ name }}!</h2>
<p>We're so grateful you want to open your home to animals in need.</p>
<p><strong>Foster Type:</strong> {% for t in foster_types %}{{ t }}{% unless forloop.last %}, {% endunless %}{% endfor %}</p>
<h3>Next Steps:</h3>
<ol>
  <li>Our foster coordinator will review your application (1-3 business days)</li>
  <li>We'll schedule a brief phone orientation</li>
  <li>Once approved, you'll be added to our foster network</li>
</ol>
<p>Questions? Reply to this email or visit our <a href="{{ tenant.site_url }}/foster">foster page</a>.</p>`,

	TemplateSponsorConfirmation: `<h2>Thank You for Your Interest, {{ company_name }}!</h2>
<p>We're excited about the possibility of partnering with you to help {{ tenant.city }}'s animals.</p>
<p>A member of our partnerships team will reach out within 2-3 business days to discuss sponsorship opportunities.</p>
<h3>In the meantime:</h3>
<ul>
  <li><a href="{{ tenant.site_url }}/impact">View our impact</a></li>
  <li><a href="{{ tenant.site_url }}/stories">Read success stories</a></li>
</ul>`,

	TemplateVetFundConfirmation: `<h2>Emergency Vet Fund Application Received</h2>
<p>Hi {{ name }},</p>
<p>We've received your emergency vet fund application for {{ pet_name }}. We understand this is a stressful time.</p>
<h3>Timeline:</h3>
<ul>
  <li><strong>Emergency cases:</strong> 24-48 hours</li>
  <li><strong>Non-emergency cases:</strong> 3-5 business days</li>
</ul>
<p>We'll contact you and your veterinarian directly once a decision is made.</p>
<p style="color: #dc2626;"><strong>If this is a life-threatening emergency:</strong> Please proceed with treatment. Many vets offer payment plans, and we can potentially help with costs retroactively.</p>`,

	TemplateDepositConfirmation: `<h2>Application Received, {{ name }}</h2>
<p>We've received your pet deposit assistance application for ${{ amount }}.</p>
<h3>What Happens Next:</h3>
<ol>
  <li>Our team will review your application (typically 3-5 business days)</li>
  <li>We may reach out for additional documentation</li>
  <li>You'll receive a decision by email</li>
</ol>
<p>If approved, funds are typically disbursed within 1-2 weeks directly to your landlord/property manager.</p>
<p style="color: #6b7280; font-size: 14px;">Need immediate assistance? Call 211 for additional housing resources.</p>`,

	TemplateSurrenderResources: `<h2>We're Here to Help, {{ name }}</h2>
<p>Thank you for reaching out before making a hard decision about {{ pet_info }}.</p>
<p>A volunteer will contact you {% if urgent %}within 24 hours{% else %}within a few days{% endif %} to talk through options that could keep your family together.</p>
<p>You can also browse our <a href="{{ tenant.site_url }}/resources">pet resources</a> for food banks, low-cost vet care and pet-friendly housing.</p>`,

	TemplateLostPetAlert: `<h2>{% if lost %}Lost{% else %}Found{% endif %} Pet Report: {{ pet_name }}</h2>
<p><strong>Species:</strong> {{ species }}</p>
<p><strong>{% if lost %}Last Seen{% else %}Found At{% endif %}:</strong> {{ location }}</p>
<p><strong>Date:</strong> {{ date }}</p>
<p><strong>Description:</strong> {{ description }}</p>
<p><strong>Contact:</strong> {{ contact_name }} ({{ contact_email }})</p>
<a href="{{ tenant.site_url }}/lost-found" class="button">View Lost &amp; Found Board</a>`,

	TemplateSubmissionSummary: `<h2>{{ title }}</h2>
{% for field in fields %}<p><strong>{{ field.label }}:</strong> {{ field.value }}</p>
{% endfor %}<a href="{{ tenant.site_url }}/admin" class="button">Open Admin</a>`,

	TemplateDonationReceipt: `<h2>Thank You{% if donor_name %}, {{ donor_name }}{% endif %}!</h2>
<p>Your {% if recurring %}monthly {% endif %}gift of ${{ amount }} to {{ tenant.name }} has been received.</p>
<p>Your generosity keeps pets and people together in {{ tenant.city }}.</p>
<p style="color: #6b7280; font-size: 14px;">Please keep this email for your records.</p>`,
}
