// Package notify renders and sends the transactional emails triggered by
// form submissions.
//
// Templates are trusted Liquid markup compiled at startup. Every binding a
// caller passes in Notice.Data is HTML-escaped before it reaches a template,
// so submitter text can never inject markup into operator or confirmation
// emails. Fields listed in Notice.Multiline additionally keep their line
// breaks as <br>.
package notify
