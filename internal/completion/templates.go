package completion

const bashTemplate = `# bash completion for {{.Command}}
_{{.Command}}() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev=""
    if [[ ${COMP_CWORD} -gt 0 ]]; then
        prev="${COMP_WORDS[COMP_CWORD-1]}"
    fi
    case "${prev}" in
{{- range .Flags}}{{if not .Bool}}
        {{if .Short}}-{{.Short}}|{{end}}--{{.Name}})
{{- if .Values}}
            COMPREPLY=($(compgen -W '{{join .Values " "}}' -- "${cur}"))
{{- else if .Path}}
            COMPREPLY=($(compgen -f -- "${cur}"))
{{- else}}
            COMPREPLY=()
{{- end}}
            return 0
            ;;
{{- end}}{{end}}
    esac
    COMPREPLY=($(compgen -W '{{range $i, $f := .Flags}}{{if $i}} {{end}}--{{$f.Name}}{{if $f.Short}} -{{$f.Short}}{{end}}{{end}}' -- "${cur}"))
}
complete -F _{{.Command}} {{.Command}}
`

const zshTemplate = `#compdef {{.Command}}

_{{.Command}}() {
    _arguments -s \
{{- range .Flags}}
        {{if .Short}}'(-{{.Short}} --{{.Name}})'{-{{.Short}}{{if not .Bool}}+{{end}},--{{.Name}}{{if not .Bool}}={{end}}}'{{else}}'--{{.Name}}{{if not .Bool}}={{end}}{{end}}[{{zhelp .Help}}]
{{- if .Values}}:value:({{join .Values " "}}){{else if .Path}}:file:_files{{else if not .Bool}}:value: {{end}}' \
{{- end}}
        && return 0
}

_{{.Command}} "$@"
`

const fishTemplate = `# fish completion for {{.Command}}
complete -c {{.Command}} -f
{{- range .Flags}}
complete -c {{$.Command}} -l {{.Name}}{{if .Short}} -s {{.Short}}{{end}} -d '{{sq .Help}}'
{{- if not .Bool}} -r{{end}}
{{- if .Values}} -a '{{join .Values " "}}'{{else if .Path}} -F{{end}}
{{- end}}
`

const powershellTemplate = `# powershell completion for {{.Command}}
using namespace System.Management.Automation

Register-ArgumentCompleter -Native -CommandName '{{.Command}}' -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $elements = $commandAst.CommandElements
    $prev = ''
    if ($wordToComplete -and $elements.Count -gt 2) {
        $prev = $elements[-2].ToString()
    } elseif (-not $wordToComplete -and $elements.Count -gt 1) {
        $prev = $elements[-1].ToString()
    }

    switch ($prev) {
{{- range .Flags}}{{if .Values}}
        { $_ -in {{if .Short}}'-{{.Short}}', {{end}}'--{{.Name}}' } {
            @({{range $i, $v := .Values}}{{if $i}}, {{end}}'{{psq $v}}'{{end}}) |
                Where-Object { $_ -like "$wordToComplete*" } |
                ForEach-Object { [CompletionResult]::new($_, $_, [CompletionResultType]::ParameterValue, $_) }
            return
        }
{{- end}}{{end}}
    }

    @(
{{- range $i, $f := .Flags}}
        [CompletionResult]::new('--{{$f.Name}}', '{{$f.Name}}', [CompletionResultType]::ParameterName, '{{psq $f.Help}}')
{{- if $f.Short}}
        [CompletionResult]::new('-{{$f.Short}}', '{{$f.Short}}', [CompletionResultType]::ParameterName, '{{psq $f.Help}}')
{{- end}}
{{- end}}
    ) | Where-Object { $_.CompletionText -like "$wordToComplete*" }
}
`

const elvishTemplate = `# elvish completion for {{.Command}}
set edit:completion:arg-completer[{{.Command}}] = {|@words|
    var n = (count $words)
    if (> $n 2) {
        var prev = $words[-2]
{{- range .Flags}}{{if not .Bool}}
        if (or{{if .Short}} (eq $prev -{{.Short}}){{end}} (eq $prev --{{.Name}})) {
{{- if .Values}}
            put{{range .Values}} '{{esq .}}'{{end}}
{{- else if .Path}}
            edit:complete-filename $words[-1]
{{- end}}
            return
        }
{{- end}}{{end}}
    }
{{- range .Flags}}
    edit:complex-candidate --{{.Name}} &display='--{{.Name}} ({{esq .Help}})'
{{- if .Short}}
    edit:complex-candidate -{{.Short}} &display='-{{.Short}} ({{esq .Help}})'
{{- end}}
{{- end}}
}
`
